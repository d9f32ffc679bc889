package shell

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	rfpform "rfp-console/internal/views/rfp-form"
	vendormanager "rfp-console/internal/views/vendor-manager"

	"github.com/gin-gonic/gin"
)

// Tab names, also used as template names.
const (
	TabRFPForm   = "rfp"
	TabVendors   = "vendors"
	TabDashboard = "dashboard"
	TabProposals = "proposals"
)

type tabLink struct {
	Name  string
	Path  string
	Label string
}

var tabLinks = []tabLink{
	{Name: TabRFPForm, Path: "/rfp", Label: "Create RFP"},
	{Name: TabDashboard, Path: "/dashboard", Label: "Dashboard"},
	{Name: TabVendors, Path: "/vendors", Label: "Vendors"},
	{Name: TabProposals, Path: "/proposals", Label: "Proposals"},
}

// page is what every tab template receives. S is the tab's own state.
type page struct {
	Tab   string
	Tabs  []tabLink
	Alert string
	S     interface{}
}

func (s *Server) render(c *gin.Context, tab string, alert string, state interface{}) {
	c.HTML(http.StatusOK, tab, page{
		Tab:   tab,
		Tabs:  tabLinks,
		Alert: alert,
		S:     state,
	})
}

func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

// formID reads a positive id from the posted form. Anything else is zero.
func formID(c *gin.Context, key string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(c.PostForm(key)), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func optionalField(c *gin.Context, key string) *string {
	v, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &v
}

// ==========================
// RFP form
// ==========================

func (s *Server) showRFPForm(c *gin.Context) {
	st := workspaceFrom(c).RFPForm
	s.render(c, TabRFPForm, st.TakeAlert(), st)
}

func (s *Server) generateRFP(c *gin.Context) {
	_ = s.rfpForm.Generate(c.Request.Context(), workspaceFrom(c).RFPForm, c.PostForm("natural_language"))
	redirect(c, "/rfp")
}

// editDraft applies the posted draft fields. action=save also saves them.
func (s *Server) editDraft(c *gin.Context) {
	st := workspaceFrom(c).RFPForm
	s.rfpForm.ApplyEdit(st, rfpform.Edit{
		Title:       optionalField(c, "title"),
		Description: optionalField(c, "description"),
		Budget:      optionalField(c, "budget"),
		Currency:    optionalField(c, "currency"),
	})

	if c.PostForm("action") == "save" {
		if err := s.rfpForm.Save(c.Request.Context(), st); errors.Is(err, rfpform.ErrNoDraft) {
			s.logger.Debug("save requested without a draft", nil)
		}
	}
	redirect(c, "/rfp")
}

func (s *Server) discardDraft(c *gin.Context) {
	s.rfpForm.Discard(workspaceFrom(c).RFPForm)
	redirect(c, "/rfp")
}

// ==========================
// Vendors
// ==========================

func (s *Server) showVendors(c *gin.Context) {
	st := workspaceFrom(c).Vendors
	_ = s.vendors.Load(c.Request.Context(), st)
	s.render(c, TabVendors, st.TakeAlert(), st)
}

func (s *Server) createVendor(c *gin.Context) {
	_ = s.vendors.Create(c.Request.Context(), workspaceFrom(c).Vendors, vendormanager.Form{
		Name:          c.PostForm("name"),
		Email:         c.PostForm("email"),
		ContactPerson: c.PostForm("contact_person"),
	})
	redirect(c, "/vendors")
}

// ==========================
// Dashboard
// ==========================

func (s *Server) showDashboard(c *gin.Context) {
	st := workspaceFrom(c).Dashboard
	_ = s.dashboard.Load(c.Request.Context(), st)
	s.render(c, TabDashboard, st.TakeAlert(), st)
}

func (s *Server) openSend(c *gin.Context) {
	st := workspaceFrom(c).Dashboard
	if err := s.dashboard.OpenSend(st, formID(c, "rfp_id")); err != nil {
		s.logger.Warn("Cannot open send surface", map[string]interface{}{"error": err})
	}
	redirect(c, "/dashboard")
}

func (s *Server) toggleVendor(c *gin.Context) {
	if id := formID(c, "vendor_id"); id != 0 {
		s.dashboard.Toggle(workspaceFrom(c).Dashboard, id)
	}
	redirect(c, "/dashboard")
}

func (s *Server) cancelSend(c *gin.Context) {
	s.dashboard.Cancel(workspaceFrom(c).Dashboard)
	redirect(c, "/dashboard")
}

// confirmSend accepts an optional vendor_id list that replaces the toggled
// selection, for clients that post the whole checkbox group at once.
func (s *Server) confirmSend(c *gin.Context) {
	st := workspaceFrom(c).Dashboard
	if raw, ok := c.GetPostFormArray("vendor_id"); ok {
		ids := make([]int64, 0, len(raw))
		for _, v := range raw {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
				ids = append(ids, id)
			}
		}
		s.dashboard.Select(st, ids)
	}
	_ = s.dashboard.Confirm(c.Request.Context(), st)
	redirect(c, "/dashboard")
}

// ==========================
// Proposals
// ==========================

func (s *Server) showProposals(c *gin.Context) {
	st := workspaceFrom(c).Proposals
	_ = s.proposals.Load(c.Request.Context(), st)
	s.render(c, TabProposals, st.TakeAlert(), st)
}

func (s *Server) selectRFP(c *gin.Context) {
	_ = s.proposals.SelectRFP(c.Request.Context(), workspaceFrom(c).Proposals, formID(c, "rfp_id"))
	redirect(c, "/proposals")
}

func (s *Server) submitProposal(c *gin.Context) {
	_ = s.proposals.Submit(c.Request.Context(), workspaceFrom(c).Proposals, formID(c, "vendor_id"), c.PostForm("raw_response"))
	redirect(c, "/proposals")
}

func (s *Server) compareProposals(c *gin.Context) {
	_ = s.proposals.Compare(c.Request.Context(), workspaceFrom(c).Proposals)
	redirect(c, "/proposals")
}
