// internal/views/proposal-comparison/models.go
package proposalcomparison

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"rfp-console/internal/api"
	"rfp-console/internal/common/viewstate"
)

const (
	UnknownVendor   = "Unknown Vendor"
	NoProposalsText = "No proposals received yet."
	CompareLabel    = "Compare All Proposals"
	SubmitLabel     = "Submit & Analyze"

	// MinProposalsToCompare is the point at which comparison is offered.
	MinProposalsToCompare = 2
)

type State struct {
	viewstate.Base
	RFPs           []api.RFP             `json:"rfps"`
	Vendors        []api.Vendor          `json:"vendors"`
	SelectedRFPID  int64                 `json:"selected_rfp_id,omitempty"`
	Proposals      []api.Proposal        `json:"proposals"`
	SubmitVendorID int64                 `json:"submit_vendor_id,omitempty"`
	Text           string                `json:"text"`
	Comparison     *api.ComparisonResult `json:"comparison,omitempty"`
}

func NewState() *State {
	return &State{Base: viewstate.Base{Status: viewstate.StatusIdle}}
}

// CanCompare reports whether the compare action is offered.
func (s *State) CanCompare() bool {
	return s.SelectedRFPID != 0 && len(s.Proposals) >= MinProposalsToCompare
}

func (s *State) ProposalsHeading() string {
	return fmt.Sprintf("Individual Analyzed Proposals (%d)", len(s.Proposals))
}

func (s *State) VendorName(id int64) string {
	for _, v := range s.Vendors {
		if v.ID == id {
			return v.Name
		}
	}
	return UnknownVendor
}

// Analysis is the AI extraction stored with a proposal. Values are kept
// loose because the model decides their shape.
type Analysis struct {
	ExtractedPrice    interface{} `json:"extracted_price"`
	ExtractedTimeline interface{} `json:"extracted_timeline"`
	Pros              interface{} `json:"pros"`
	Cons              interface{} `json:"cons"`
}

// ParseAnalysis decodes a stored analysis. Anything that is not a JSON
// object yields the empty analysis.
func ParseAnalysis(raw string) Analysis {
	var a Analysis
	if strings.TrimSpace(raw) == "" {
		return a
	}
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return Analysis{}
	}
	return a
}

// PriceText is "$<price>" or "N/A" when no usable price was extracted.
func (a Analysis) PriceText() string {
	if isEmptyValue(a.ExtractedPrice) {
		return "N/A"
	}
	return "$" + api.FormatCell(a.ExtractedPrice)
}

func (a Analysis) TimelineText() string {
	if isEmptyValue(a.ExtractedTimeline) {
		return "Unknown"
	}
	return api.FormatCell(a.ExtractedTimeline)
}

func (a Analysis) ProsText() string { return listText(a.Pros) }
func (a Analysis) ConsText() string { return listText(a.Cons) }

func listText(v interface{}) string {
	if isEmptyValue(v) {
		return ""
	}
	return api.FormatCell(v)
}

// isEmptyValue treats the falsy JSON values as missing.
func isEmptyValue(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case float64:
		return t == 0
	case bool:
		return !t
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}

// ProposalCard is the display form of one analyzed proposal.
type ProposalCard struct {
	ID        int64
	Vendor    string
	Score     string
	Price     string
	Timeline  string
	Rationale string
	Pros      string
	Cons      string
}

func (s *State) Cards() []ProposalCard {
	cards := make([]ProposalCard, 0, len(s.Proposals))
	for _, p := range s.Proposals {
		a := ParseAnalysis(p.ExtractedData)
		cards = append(cards, ProposalCard{
			ID:        p.ID,
			Vendor:    s.VendorName(p.VendorID),
			Score:     scoreText(p.AIScore),
			Price:     a.PriceText(),
			Timeline:  "Timeline: " + a.TimelineText(),
			Rationale: p.AIRationale,
			Pros:      a.ProsText(),
			Cons:      a.ConsText(),
		})
	}
	return cards
}

func scoreText(score *int) string {
	if score == nil {
		return "AI Score: N/A"
	}
	return "AI Score: " + strconv.Itoa(*score) + "/100"
}

// MatrixRow is one rendered comparison row.
type MatrixRow struct {
	Vendor       string
	Score        string
	PriceRanking string
	Strengths    string
	Weaknesses   string
	Best         bool
}

func (s *State) Matrix() []MatrixRow {
	if s.Comparison == nil {
		return nil
	}
	rows := make([]MatrixRow, 0, len(s.Comparison.ComparisonMatrix))
	for _, r := range s.Comparison.ComparisonMatrix {
		rows = append(rows, MatrixRow{
			Vendor:       r.VendorName,
			Score:        api.FormatCell(r.Score),
			PriceRanking: api.FormatCell(r.PriceRanking),
			Strengths:    api.FormatCell(r.KeyStrengths),
			Weaknesses:   api.FormatCell(r.KeyWeaknesses),
			Best:         s.Comparison.IsBest(r),
		})
	}
	return rows
}
