// internal/views/rfp-form/models.go
package rfpform

import (
	"strings"

	"rfp-console/internal/api"
	"rfp-console/internal/common/viewstate"
)

const (
	DegradedBadge    = "AI Unavailable"
	RateLimitMessage = "Rate limit reached. Please wait a moment."

	SaveLabel       = "Confirm & Save RFP"
	SaveManualLabel = "Save Manual RFP"

	BudgetPlaceholder = "N/A"
)

// Draft is the editable structure returned by generation. Budget stays text
// until save so the user can type anything into it.
type Draft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Budget       string   `json:"budget"`
	Currency     string   `json:"currency"`
	Requirements []string `json:"requirements,omitempty"`
	Error        string   `json:"error,omitempty"`
}

func draftFromSuggestion(s *api.RFPSuggestion) *Draft {
	return &Draft{
		Title:        s.Title,
		Description:  s.Description,
		Budget:       s.BudgetText(),
		Currency:     s.Currency,
		Requirements: s.Requirements,
		Error:        s.Error,
	}
}

// Degraded reports whether the AI could not structure the request.
func (d *Draft) Degraded() bool {
	return d.Error != ""
}

// ErrorText is the banner text for a degraded draft.
func (d *Draft) ErrorText() string {
	if strings.Contains(d.Error, "429") {
		return RateLimitMessage
	}
	return d.Error
}

func (d *Draft) SaveLabel() string {
	if d.Degraded() {
		return SaveManualLabel
	}
	return SaveLabel
}

// CurrencyText is the currency shown in the editor.
func (d *Draft) CurrencyText() string {
	if d.Currency == "" {
		return "USD"
	}
	return d.Currency
}

// Edit replaces the draft fields that are set. Nil means unchanged.
type Edit struct {
	Title       *string
	Description *string
	Budget      *string
	Currency    *string
}

type State struct {
	viewstate.Base
	Input string `json:"input"`
	Draft *Draft `json:"draft,omitempty"`
}

func NewState() *State {
	return &State{Base: viewstate.Base{Status: viewstate.StatusIdle}}
}

// structuredData is what gets stored alongside the saved RFP.
type structuredData struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Budget       *float64 `json:"budget"`
	Currency     string   `json:"currency"`
	Requirements []string `json:"requirements"`
	Error        string   `json:"error,omitempty"`
}
