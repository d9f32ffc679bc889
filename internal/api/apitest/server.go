// Package apitest runs an in-memory stand-in for the RFP service so the
// console can be exercised end to end without the real backend.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"rfp-console/internal/api"
)

var priceRegexp = regexp.MustCompile(`\$\s?([0-9][0-9,]*(?:\.[0-9]+)?)`)

// Server is a fake RFP service. Records are kept in memory, generation and
// analysis are deterministic. Fail forces a status code for "METHOD /path".
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	nextID    int64
	rfps      []api.RFP
	vendors   []api.Vendor
	proposals []api.Proposal
	fail      map[string]int
	requests  []string

	// GenerateError, when set, makes generation return a degraded draft
	// carrying this error text.
	GenerateError string
}

func NewServer() *Server {
	s := &Server{fail: make(map[string]int)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.health)
	mux.HandleFunc("POST /rfps/generate", s.generate)
	mux.HandleFunc("POST /rfps/{$}", s.createRFP)
	mux.HandleFunc("GET /rfps/{$}", s.listRFPs)
	mux.HandleFunc("POST /rfps/{id}/send", s.sendRFP)
	mux.HandleFunc("POST /vendors/{$}", s.createVendor)
	mux.HandleFunc("GET /vendors/{$}", s.listVendors)
	mux.HandleFunc("POST /proposals/{$}", s.submitProposal)
	mux.HandleFunc("GET /proposals/rfp/{id}", s.listProposals)
	mux.HandleFunc("POST /proposals/compare/{id}", s.compare)

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// Fail makes every later request to method+path answer with status.
func (s *Server) Fail(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[method+" "+path] = status
}

// Requests lists every "METHOD /path" received, in order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r == method+" "+path {
			n++
		}
	}
	return n
}

func (s *Server) RFPs() []api.RFP {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.RFP(nil), s.rfps...)
}

func (s *Server) Vendors() []api.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Vendor(nil), s.vendors...)
}

func (s *Server) Proposals() []api.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Proposal(nil), s.proposals...)
}

// SeedVendor stores a vendor directly and returns it with its id.
func (s *Server) SeedVendor(v api.Vendor) api.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.id()
	s.vendors = append(s.vendors, v)
	return v
}

// SeedRFP stores an RFP directly; an empty status becomes draft.
func (s *Server) SeedRFP(r api.RFP) api.RFP {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.id()
	if r.Status == "" {
		r.Status = api.StatusDraft
	}
	s.rfps = append(s.rfps, r)
	return r
}

// SeedProposal stores a proposal verbatim, skipping analysis.
func (s *Server) SeedProposal(p api.Proposal) api.Proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.id()
	s.proposals = append(s.proposals, p)
	return p
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		s.mu.Lock()
		s.requests = append(s.requests, key)
		status, failing := s.fail[key]
		s.mu.Unlock()

		if failing {
			writeError(w, status, "forced failure")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, api.Health{Status: "ok", Message: "RFP service is running"})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	genErr := s.GenerateError
	s.mu.Unlock()

	if genErr != "" {
		writeJSON(w, http.StatusOK, api.RFPSuggestion{
			Title:       "[AI Error] " + truncate(req.NaturalLanguageInput, 40),
			Description: req.NaturalLanguageInput,
			Budget:      json.RawMessage("null"),
			Currency:    "USD",
			Error:       genErr,
		})
		return
	}

	budget := "0"
	if price, ok := extractPrice(req.NaturalLanguageInput); ok {
		budget = strconv.FormatFloat(price, 'f', -1, 64)
	}
	writeJSON(w, http.StatusOK, api.RFPSuggestion{
		Title:        truncate(req.NaturalLanguageInput, 40),
		Description:  req.NaturalLanguageInput,
		Budget:       json.RawMessage(budget),
		Currency:     "USD",
		Requirements: []string{req.NaturalLanguageInput},
	})
}

func (s *Server) createRFP(w http.ResponseWriter, r *http.Request) {
	var rfp api.RFP
	if !decode(w, r, &rfp) {
		return
	}
	if rfp.Title == "" {
		writeError(w, http.StatusUnprocessableEntity, "title is required")
		return
	}
	writeJSON(w, http.StatusOK, s.SeedRFP(rfp))
}

func (s *Server) listRFPs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.RFPs())
}

func (s *Server) sendRFP(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req api.SendRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.rfps {
		if s.rfps[i].ID == id {
			idx = i
		}
	}
	if idx < 0 {
		writeError(w, http.StatusNotFound, "RFP not found")
		return
	}

	sent := 0
	for _, vid := range req.VendorIDs {
		for _, v := range s.vendors {
			if v.ID == vid && v.Email != "" {
				sent++
			}
		}
	}
	s.rfps[idx].Status = api.StatusOpen
	writeJSON(w, http.StatusOK, api.SendResult{
		Message: fmt.Sprintf("RFP sent to %d vendors", sent),
		Status:  "success",
	})
}

func (s *Server) createVendor(w http.ResponseWriter, r *http.Request) {
	var v api.Vendor
	if !decode(w, r, &v) {
		return
	}
	for _, existing := range s.Vendors() {
		if strings.EqualFold(existing.Email, v.Email) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
	}
	writeJSON(w, http.StatusOK, s.SeedVendor(v))
}

func (s *Server) listVendors(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Vendors())
}

func (s *Server) submitProposal(w http.ResponseWriter, r *http.Request) {
	var in api.ProposalInput
	if !decode(w, r, &in) {
		return
	}
	if !s.hasRFP(in.RFPID) {
		writeError(w, http.StatusNotFound, "RFP not found")
		return
	}
	if !s.hasVendor(in.VendorID) {
		writeError(w, http.StatusNotFound, "Vendor not found")
		return
	}

	analysis := analyze(in.RawResponse)
	data, _ := json.Marshal(analysis)
	score := analysis["score"].(int)
	p := s.SeedProposal(api.Proposal{
		RFPID:         in.RFPID,
		VendorID:      in.VendorID,
		RawResponse:   in.RawResponse,
		ExtractedData: string(data),
		AIScore:       &score,
		AIRationale:   analysis["rationale"].(string),
		ReceivedAt:    "2025-01-01T00:00:00",
	})
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listProposals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out := []api.Proposal{}
	for _, p := range s.Proposals() {
		if p.RFPID == id {
			out = append(out, p)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var props []api.Proposal
	for _, p := range s.Proposals() {
		if p.RFPID == id {
			props = append(props, p)
		}
	}
	if len(props) < 2 {
		writeError(w, http.StatusBadRequest, "need at least two proposals to compare")
		return
	}

	sort.SliceStable(props, func(i, j int) bool { return scoreOf(props[i]) > scoreOf(props[j]) })

	names := make(map[int64]string)
	for _, v := range s.Vendors() {
		names[v.ID] = v.Name
	}

	rows := make([]api.ComparisonRow, 0, len(props))
	for i, p := range props {
		rows = append(rows, api.ComparisonRow{
			VendorID:      p.VendorID,
			VendorName:    names[p.VendorID],
			Score:         scoreOf(p),
			PriceRanking:  i + 1,
			KeyStrengths:  []string{"responsive"},
			KeyWeaknesses: "none noted",
		})
	}
	best := props[0]
	writeJSON(w, http.StatusOK, api.ComparisonResult{
		Recommendation:   fmt.Sprintf("Award to %s.", names[best.VendorID]),
		BestVendorID:     best.VendorID,
		BestVendorName:   names[best.VendorID],
		ComparisonMatrix: rows,
	})
}

func (s *Server) hasRFP(id int64) bool {
	for _, r := range s.RFPs() {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (s *Server) hasVendor(id int64) bool {
	for _, v := range s.Vendors() {
		if v.ID == id {
			return true
		}
	}
	return false
}

// analyze mimics the service's proposal analysis: a price is extracted when
// the text mentions one and longer answers score higher.
func analyze(raw string) map[string]interface{} {
	score := 50 + len(raw)%50
	out := map[string]interface{}{
		"score":     score,
		"rationale": "Automated analysis of the vendor response.",
		"pros":      []string{"clear offer"},
		"cons":      []string{},
	}
	if price, ok := extractPrice(raw); ok {
		out["extracted_price"] = price
	}
	if strings.Contains(strings.ToLower(raw), "week") {
		out["extracted_timeline"] = "weeks"
	}
	return out
}

func extractPrice(text string) (float64, bool) {
	m := priceRegexp.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	return price, err == nil
}

func scoreOf(p api.Proposal) int {
	if p.AIScore == nil {
		return 0
	}
	return *p.AIScore
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid id")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
