// internal/views/rfp-dashboard/models.go
package rfpdashboard

import (
	"fmt"
	"strconv"

	"rfp-console/internal/api"
	"rfp-console/internal/common/viewstate"
)

const (
	SendLabel     = "Send to Vendors"
	SendMoreLabel = "Send to More"
)

// SendSurface is the vendor picker opened for one RFP.
type SendSurface struct {
	RFPID    int64   `json:"rfp_id"`
	RFPTitle string  `json:"rfp_title"`
	Selected []int64 `json:"selected"`
}

func (s *SendSurface) IsSelected(vendorID int64) bool {
	for _, id := range s.Selected {
		if id == vendorID {
			return true
		}
	}
	return false
}

// CanConfirm reports whether the send button is enabled.
func (s *SendSurface) CanConfirm() bool {
	return s.RFPID != 0 && len(s.Selected) > 0
}

func (s *SendSurface) Heading() string {
	return fmt.Sprintf("Send %q", s.RFPTitle)
}

func (s *SendSurface) ConfirmLabel() string {
	return fmt.Sprintf("Send to %d Vendors", len(s.Selected))
}

type State struct {
	viewstate.Base
	RFPs    []api.RFP    `json:"rfps"`
	Vendors []api.Vendor `json:"vendors"`
	Send    *SendSurface `json:"send,omitempty"`
}

func NewState() *State {
	return &State{Base: viewstate.Base{Status: viewstate.StatusIdle}}
}

// Card is the display form of one RFP on the dashboard.
type Card struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Budget      string
	Open        bool
	SendLabel   string
}

func NewCard(r api.RFP) Card {
	open := r.Status == api.StatusOpen
	label := SendLabel
	if open {
		label = SendMoreLabel
	}
	return Card{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      "Status: " + r.Status,
		Budget:      "Budget: " + budgetText(r),
		Open:        open,
		SendLabel:   label,
	}
}

// budgetText mirrors how the service shows budgets: a zero or missing
// budget is N/A.
func budgetText(r api.RFP) string {
	if r.Budget == nil || *r.Budget == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(*r.Budget, 'f', -1, 64), r.Currency)
}

func (s *State) Cards() []Card {
	cards := make([]Card, 0, len(s.RFPs))
	for _, r := range s.RFPs {
		cards = append(cards, NewCard(r))
	}
	return cards
}
