// internal/api/client.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	httpclient "rfp-console/internal/common/http"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/metrics"
)

// StatusError is returned for any non-2xx answer from the RFP service.
type StatusError = httpclient.StatusError

// Operation names used in logs and metrics.
const (
	OpGenerateRFP      = "generate_rfp"
	OpCreateRFP        = "create_rfp"
	OpListRFPs         = "list_rfps"
	OpHealthCheck      = "health_check"
	OpCreateVendor     = "create_vendor"
	OpListVendors      = "list_vendors"
	OpSendRFP          = "send_rfp"
	OpSubmitProposal   = "submit_proposal"
	OpListProposals    = "list_proposals"
	OpCompareProposals = "compare_proposals"
)

// Client calls the RFP service. Every method issues exactly one request and
// hands any failure back to the caller untouched.
type Client struct {
	http   *httpclient.Client
	logger logger.Logger
}

func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		http:   httpclient.NewClient(baseURL, timeout),
		logger: log.Named("api"),
	}
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

func (c *Client) GenerateRFPStructure(ctx context.Context, naturalLanguageInput string) (*RFPSuggestion, error) {
	var out RFPSuggestion
	req := GenerateRequest{NaturalLanguageInput: naturalLanguageInput}
	if err := c.call(ctx, OpGenerateRFP, http.MethodPost, "/rfps/generate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateRFP(ctx context.Context, rfp RFP) (*RFP, error) {
	var out RFP
	if err := c.call(ctx, OpCreateRFP, http.MethodPost, "/rfps/", rfp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListRFPs(ctx context.Context) ([]RFP, error) {
	out := []RFP{}
	if err := c.call(ctx, OpListRFPs, http.MethodGet, "/rfps/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	var out Health
	if err := c.call(ctx, OpHealthCheck, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateVendor(ctx context.Context, vendor Vendor) (*Vendor, error) {
	var out Vendor
	if err := c.call(ctx, OpCreateVendor, http.MethodPost, "/vendors/", vendor, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListVendors(ctx context.Context) ([]Vendor, error) {
	out := []Vendor{}
	if err := c.call(ctx, OpListVendors, http.MethodGet, "/vendors/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendRFP dispatches one RFP to every vendor in vendorIDs in a single call.
func (c *Client) SendRFP(ctx context.Context, rfpID int64, vendorIDs []int64) (*SendResult, error) {
	var out SendResult
	path := fmt.Sprintf("/rfps/%d/send", rfpID)
	if err := c.call(ctx, OpSendRFP, http.MethodPost, path, SendRequest{VendorIDs: vendorIDs}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitProposal(ctx context.Context, input ProposalInput) (*Proposal, error) {
	var out Proposal
	if err := c.call(ctx, OpSubmitProposal, http.MethodPost, "/proposals/", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProposals(ctx context.Context, rfpID int64) ([]Proposal, error) {
	out := []Proposal{}
	path := fmt.Sprintf("/proposals/rfp/%d", rfpID)
	if err := c.call(ctx, OpListProposals, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CompareProposals(ctx context.Context, rfpID int64) (*ComparisonResult, error) {
	var out ComparisonResult
	path := fmt.Sprintf("/proposals/compare/%d", rfpID)
	if err := c.call(ctx, OpCompareProposals, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) call(ctx context.Context, operation, method, path string, in, out interface{}) error {
	start := time.Now()
	status, err := c.http.DoJSON(ctx, method, path, in, out)
	elapsed := time.Since(start)

	metrics.APIRequestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
	metrics.APIRequestsTotal.WithLabelValues(operation, statusLabel(status)).Inc()

	fields := map[string]interface{}{
		"operation":  operation,
		"method":     method,
		"path":       path,
		"status":     status,
		"durationMs": elapsed.Milliseconds(),
	}
	if err != nil {
		fields["error"] = err
		c.logger.Debug("api call failed", fields)
		return fmt.Errorf("%s: %w", operation, err)
	}
	c.logger.Debug("api call", fields)
	return nil
}

func statusLabel(status int) string {
	if status == 0 {
		return "transport_error"
	}
	return strconv.Itoa(status)
}
