// internal/api/models.go
package api

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// RFP statuses as stored by the RFP service.
const (
	StatusDraft   = "draft"
	StatusOpen    = "open"
	StatusClosed  = "closed"
	StatusAwarded = "awarded"
)

type RFP struct {
	ID             int64    `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Budget         *float64 `json:"budget,omitempty"`
	Currency       string   `json:"currency,omitempty"`
	Status         string   `json:"status,omitempty"`
	StructuredData *string  `json:"structured_data,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

type Vendor struct {
	ID            int64  `json:"id,omitempty"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person,omitempty"`
}

type Proposal struct {
	ID            int64  `json:"id,omitempty"`
	RFPID         int64  `json:"rfp_id"`
	VendorID      int64  `json:"vendor_id"`
	RawResponse   string `json:"raw_response"`
	ExtractedData string `json:"extracted_data,omitempty"`
	AIScore       *int   `json:"ai_score,omitempty"`
	AIRationale   string `json:"ai_rationale,omitempty"`
	ReceivedAt    string `json:"received_at,omitempty"`
}

// ProposalInput is the body of a manual proposal submission.
type ProposalInput struct {
	RFPID       int64  `json:"rfp_id"`
	VendorID    int64  `json:"vendor_id"`
	RawResponse string `json:"raw_response"`
}

type GenerateRequest struct {
	NaturalLanguageInput string `json:"natural_language_input"`
}

// RFPSuggestion is the AI-structured draft returned by generation. Error is
// set when the service fell back to a degraded draft.
type RFPSuggestion struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Budget       json.RawMessage `json:"budget,omitempty"`
	Currency     string          `json:"currency,omitempty"`
	Requirements []string        `json:"requirements,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// BudgetText renders the suggested budget as editable text. Numbers keep
// their literal form, strings are unquoted, null becomes empty.
func (s RFPSuggestion) BudgetText() string {
	raw := bytes.TrimSpace(s.Budget)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return string(raw)
}

type SendRequest struct {
	VendorIDs []int64 `json:"vendor_ids"`
}

type SendResult struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type Health struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ComparisonResult is the AI ranking of every proposal for one RFP. Matrix
// cells are whatever the model produced, so they stay untyped.
type ComparisonResult struct {
	Recommendation   string          `json:"recommendation"`
	BestVendorID     interface{}     `json:"best_vendor_id,omitempty"`
	BestVendorName   string          `json:"best_vendor_name"`
	ComparisonMatrix []ComparisonRow `json:"comparison_matrix"`
}

type ComparisonRow struct {
	VendorID      interface{} `json:"vendor_id,omitempty"`
	VendorName    string      `json:"vendor_name"`
	Score         interface{} `json:"score"`
	PriceRanking  interface{} `json:"price_ranking"`
	KeyStrengths  interface{} `json:"key_strengths"`
	KeyWeaknesses interface{} `json:"key_weaknesses"`
}

// IsBest reports whether row is the vendor the comparison recommends. Ids
// are compared when both sides carry one, names otherwise.
func (r ComparisonResult) IsBest(row ComparisonRow) bool {
	bestID, rowID := FormatCell(r.BestVendorID), FormatCell(row.VendorID)
	if bestID != "" && rowID != "" {
		return bestID == rowID
	}
	return row.VendorName != "" && row.VendorName == r.BestVendorName
}

// FormatCell renders a free-form JSON value as display text.
func FormatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, FormatCell(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(t, ", ")
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
