// internal/views/vendor-manager/models.go
package vendormanager

import (
	"fmt"

	"rfp-console/internal/api"
	"rfp-console/internal/common/viewstate"
)

// Form is the vendor registration form as typed by the user.
type Form struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person,omitempty"`
}

type State struct {
	viewstate.Base
	Form    Form         `json:"form"`
	Vendors []api.Vendor `json:"vendors"`
}

func NewState() *State {
	return &State{Base: viewstate.Base{Status: viewstate.StatusIdle}}
}

// Heading is the title above the vendor list.
func (s *State) Heading() string {
	return fmt.Sprintf("Registered Vendors (%d)", len(s.Vendors))
}

const EmptyListText = "No vendors registered yet."
