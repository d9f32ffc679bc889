package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rfp-console/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type capturedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// newTestServer answers every request with status and body, recording what
// it received.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &captured.Body))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, baseURL string) *Client {
	return NewClient(baseURL, 5*time.Second, logger.NewTestLogger(t))
}

// ==========================
// Endpoint Tests
// ==========================

func TestClient_Endpoints(t *testing.T) {
	budget := 5000.0
	structured := `{"title":"Laptops"}`

	tests := []struct {
		name         string
		response     string
		call         func(c *Client) (interface{}, error)
		expectMethod string
		expectPath   string
		expectBody   map[string]interface{}
		validate     func(t *testing.T, out interface{})
	}{
		{
			name:     "generate rfp structure",
			response: `{"title":"Laptops","description":"20 laptops","budget":50000,"currency":"USD","requirements":["16GB RAM"]}`,
			call: func(c *Client) (interface{}, error) {
				return c.GenerateRFPStructure(context.Background(), "We need 20 laptops")
			},
			expectMethod: http.MethodPost,
			expectPath:   "/rfps/generate",
			expectBody:   map[string]interface{}{"natural_language_input": "We need 20 laptops"},
			validate: func(t *testing.T, out interface{}) {
				s := out.(*RFPSuggestion)
				assert.Equal(t, "Laptops", s.Title)
				assert.Equal(t, "50000", s.BudgetText())
				assert.Equal(t, []string{"16GB RAM"}, s.Requirements)
				assert.Empty(t, s.Error)
			},
		},
		{
			name:     "create rfp",
			response: `{"id":7,"title":"Laptops","description":"d","budget":5000,"currency":"USD","status":"draft"}`,
			call: func(c *Client) (interface{}, error) {
				return c.CreateRFP(context.Background(), RFP{
					Title: "Laptops", Description: "d", Budget: &budget, Currency: "USD", StructuredData: &structured,
				})
			},
			expectMethod: http.MethodPost,
			expectPath:   "/rfps/",
			expectBody: map[string]interface{}{
				"title": "Laptops", "description": "d", "budget": 5000.0, "currency": "USD",
				"structured_data": structured,
			},
			validate: func(t *testing.T, out interface{}) {
				r := out.(*RFP)
				assert.Equal(t, int64(7), r.ID)
				assert.Equal(t, StatusDraft, r.Status)
			},
		},
		{
			name:     "list rfps",
			response: `[{"id":1,"title":"A","description":"x","budget":null,"status":"open","created_at":"2025-01-01T10:00:00"}]`,
			call: func(c *Client) (interface{}, error) {
				return c.ListRFPs(context.Background())
			},
			expectMethod: http.MethodGet,
			expectPath:   "/rfps/",
			validate: func(t *testing.T, out interface{}) {
				rfps := out.([]RFP)
				require.Len(t, rfps, 1)
				assert.Nil(t, rfps[0].Budget)
				assert.Equal(t, "2025-01-01T10:00:00", rfps[0].CreatedAt)
			},
		},
		{
			name:     "health check",
			response: `{"status":"ok","message":"running"}`,
			call: func(c *Client) (interface{}, error) {
				return c.HealthCheck(context.Background())
			},
			expectMethod: http.MethodGet,
			expectPath:   "/health",
			validate: func(t *testing.T, out interface{}) {
				assert.Equal(t, "ok", out.(*Health).Status)
			},
		},
		{
			name:     "create vendor without contact",
			response: `{"id":3,"name":"Acme Corp","email":"sales@acme.com","contact_person":null}`,
			call: func(c *Client) (interface{}, error) {
				return c.CreateVendor(context.Background(), Vendor{Name: "Acme Corp", Email: "sales@acme.com"})
			},
			expectMethod: http.MethodPost,
			expectPath:   "/vendors/",
			expectBody:   map[string]interface{}{"name": "Acme Corp", "email": "sales@acme.com"},
			validate: func(t *testing.T, out interface{}) {
				v := out.(*Vendor)
				assert.Equal(t, int64(3), v.ID)
				assert.Empty(t, v.ContactPerson)
			},
		},
		{
			name:     "list vendors",
			response: `[]`,
			call: func(c *Client) (interface{}, error) {
				return c.ListVendors(context.Background())
			},
			expectMethod: http.MethodGet,
			expectPath:   "/vendors/",
			validate: func(t *testing.T, out interface{}) {
				assert.NotNil(t, out.([]Vendor))
				assert.Empty(t, out.([]Vendor))
			},
		},
		{
			name:     "send rfp batches vendor ids",
			response: `{"message":"RFP sent to 2 vendors","status":"success"}`,
			call: func(c *Client) (interface{}, error) {
				return c.SendRFP(context.Background(), 4, []int64{1, 2})
			},
			expectMethod: http.MethodPost,
			expectPath:   "/rfps/4/send",
			expectBody:   map[string]interface{}{"vendor_ids": []interface{}{1.0, 2.0}},
			validate: func(t *testing.T, out interface{}) {
				assert.Equal(t, "success", out.(*SendResult).Status)
			},
		},
		{
			name:     "submit proposal",
			response: `{"id":9,"rfp_id":4,"vendor_id":1,"raw_response":"$500","ai_score":80,"extracted_data":"{\"extracted_price\":500}"}`,
			call: func(c *Client) (interface{}, error) {
				return c.SubmitProposal(context.Background(), ProposalInput{RFPID: 4, VendorID: 1, RawResponse: "$500"})
			},
			expectMethod: http.MethodPost,
			expectPath:   "/proposals/",
			expectBody:   map[string]interface{}{"rfp_id": 4.0, "vendor_id": 1.0, "raw_response": "$500"},
			validate: func(t *testing.T, out interface{}) {
				p := out.(*Proposal)
				require.NotNil(t, p.AIScore)
				assert.Equal(t, 80, *p.AIScore)
			},
		},
		{
			name:     "list proposals",
			response: `[{"id":9,"rfp_id":4,"vendor_id":1,"raw_response":"x","ai_score":null}]`,
			call: func(c *Client) (interface{}, error) {
				return c.ListProposals(context.Background(), 4)
			},
			expectMethod: http.MethodGet,
			expectPath:   "/proposals/rfp/4",
			validate: func(t *testing.T, out interface{}) {
				props := out.([]Proposal)
				require.Len(t, props, 1)
				assert.Nil(t, props[0].AIScore)
			},
		},
		{
			name:     "compare proposals",
			response: `{"recommendation":"Pick Acme","best_vendor_name":"Acme","comparison_matrix":[{"vendor_name":"Acme","score":90,"price_ranking":"1","key_strengths":["fast"],"key_weaknesses":"none"}]}`,
			call: func(c *Client) (interface{}, error) {
				return c.CompareProposals(context.Background(), 4)
			},
			expectMethod: http.MethodPost,
			expectPath:   "/proposals/compare/4",
			validate: func(t *testing.T, out interface{}) {
				r := out.(*ComparisonResult)
				assert.Equal(t, "Pick Acme", r.Recommendation)
				require.Len(t, r.ComparisonMatrix, 1)
				assert.True(t, r.IsBest(r.ComparisonMatrix[0]))
				assert.Equal(t, "fast", FormatCell(r.ComparisonMatrix[0].KeyStrengths))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, captured := newTestServer(t, http.StatusOK, tt.response)
			client := newTestClient(t, srv.URL)

			out, err := tt.call(client)
			require.NoError(t, err)

			assert.Equal(t, tt.expectMethod, captured.Method)
			assert.Equal(t, tt.expectPath, captured.Path)
			if tt.expectBody != nil {
				assert.Equal(t, tt.expectBody, captured.Body)
			} else {
				assert.Nil(t, captured.Body)
			}
			if tt.validate != nil {
				tt.validate(t, out)
			}
		})
	}
}

// ==========================
// Error Handling Tests
// ==========================

func TestClient_NonSuccessStatus(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, `{"detail":"RFP not found"}`)
	client := newTestClient(t, srv.URL)

	_, err := client.SendRFP(context.Background(), 99, []int64{1})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "/rfps/99/send", statusErr.Path)
	assert.Contains(t, err.Error(), "RFP not found")
	assert.Contains(t, err.Error(), OpSendRFP)
}

func TestClient_TransportError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{}`)
	srv.Close()
	client := newTestClient(t, srv.URL)

	_, err := client.ListVendors(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.Contains(t, err.Error(), "send request")
}

func TestClient_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{not json`)
	client := newTestClient(t, srv.URL)

	_, err := client.ListRFPs(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal response")
}

func TestClient_ContextCancelled(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.HealthCheck(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_BaseURLTrimmed(t *testing.T) {
	client := NewClient("http://localhost:8000/", time.Second, nil)
	assert.Equal(t, "http://localhost:8000", client.BaseURL())
}
