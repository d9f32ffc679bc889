package shell

import (
	"encoding/json"
	"fmt"

	proposalcomparison "rfp-console/internal/views/proposal-comparison"
	rfpdashboard "rfp-console/internal/views/rfp-dashboard"
	rfpform "rfp-console/internal/views/rfp-form"
	vendormanager "rfp-console/internal/views/vendor-manager"
)

// Workspace is everything one browser session has on screen. The four tab
// states never reference each other.
type Workspace struct {
	RFPForm   *rfpform.State            `json:"rfp_form"`
	Vendors   *vendormanager.State      `json:"vendors"`
	Dashboard *rfpdashboard.State       `json:"dashboard"`
	Proposals *proposalcomparison.State `json:"proposals"`
}

func NewWorkspace() *Workspace {
	return &Workspace{
		RFPForm:   rfpform.NewState(),
		Vendors:   vendormanager.NewState(),
		Dashboard: rfpdashboard.NewState(),
		Proposals: proposalcomparison.NewState(),
	}
}

func decodeWorkspace(data []byte) (*Workspace, error) {
	ws := &Workspace{}
	if err := json.Unmarshal(data, ws); err != nil {
		return nil, fmt.Errorf("decode workspace: %w", err)
	}
	fresh := NewWorkspace()
	if ws.RFPForm == nil {
		ws.RFPForm = fresh.RFPForm
	}
	if ws.Vendors == nil {
		ws.Vendors = fresh.Vendors
	}
	if ws.Dashboard == nil {
		ws.Dashboard = fresh.Dashboard
	}
	if ws.Proposals == nil {
		ws.Proposals = fresh.Proposals
	}
	return ws, nil
}

func (w *Workspace) encode() ([]byte, error) {
	return json.Marshal(w)
}
