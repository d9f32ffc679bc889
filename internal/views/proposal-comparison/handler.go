// internal/views/proposal-comparison/handler.go
package proposalcomparison

import (
	"context"

	"rfp-console/internal/api"
	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/observability"
)

const (
	ViewName = "proposal-comparison"

	AlertSubmitted     = "Proposal submitted & Analyzed!"
	AlertSubmitFailed  = "Failed to submit proposal"
	AlertCompareFailed = "Failed to compare proposals"
)

type APIClient interface {
	ListRFPs(ctx context.Context) ([]api.RFP, error)
	ListVendors(ctx context.Context) ([]api.Vendor, error)
	SubmitProposal(ctx context.Context, input api.ProposalInput) (*api.Proposal, error)
	ListProposals(ctx context.Context, rfpID int64) ([]api.Proposal, error)
	CompareProposals(ctx context.Context, rfpID int64) (*api.ComparisonResult, error)
}

type Handler struct {
	config *Config
	client APIClient
	logger logger.Logger
	errors *apperrors.ErrorHandler
	obs    *observability.Observability
}

func NewHandler(config *Config, client APIClient, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"view": ViewName})
	return &Handler{
		config: config,
		client: client,
		logger: log,
		errors: apperrors.NewErrorHandler(log),
		obs:    obs,
	}
}

// Load fetches the selector lists and, when an RFP is selected, its
// proposals.
func (h *Handler) Load(ctx context.Context, st *State) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if rfps, err := h.client.ListRFPs(ctx); err != nil {
		h.logger.Error("Failed to fetch RFPs", map[string]interface{}{"error": err})
		keep(err)
	} else {
		st.RFPs = rfps
	}

	if vendors, err := h.client.ListVendors(ctx); err != nil {
		h.logger.Error("Failed to fetch vendors", map[string]interface{}{"error": err})
		keep(err)
	} else {
		st.Vendors = vendors
	}

	if st.SelectedRFPID != 0 {
		if err := h.loadProposals(ctx, st); err != nil {
			keep(err)
		}
	}
	return firstErr
}

// SelectRFP switches the view to rfpID, dropping any comparison on screen.
// Zero clears the selection.
func (h *Handler) SelectRFP(ctx context.Context, st *State, rfpID int64) error {
	st.SelectedRFPID = rfpID
	st.Comparison = nil
	st.FieldErrors = nil
	if rfpID == 0 {
		st.Proposals = nil
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()
	st.Proposals = nil
	return h.loadProposals(ctx, st)
}

func (h *Handler) loadProposals(ctx context.Context, st *State) error {
	proposals, err := h.client.ListProposals(ctx, st.SelectedRFPID)
	if err != nil {
		h.logger.Error("Failed to load proposals", map[string]interface{}{
			"rfpId": st.SelectedRFPID,
			"error": err,
		})
		return err
	}
	st.Proposals = proposals
	return nil
}

// Submit sends a manual proposal for the selected RFP. Missing RFP, vendor
// or text is rejected locally.
func (h *Handler) Submit(ctx context.Context, st *State, vendorID int64, text string) (err error) {
	done := h.obs.Track(ctx, ViewName, "submit")
	rejected := false
	defer func() { done(err, rejected) }()

	st.SubmitVendorID = vendorID
	st.Text = text

	if fields := ValidateSubmission(st.SelectedRFPID, vendorID, text); fields != nil {
		rejected = true
		st.Reject(fields)
		return apperrors.NewValidationError("proposal rejected", fields)
	}

	st.Begin()
	submitCtx, cancel := context.WithTimeout(ctx, h.config.AnalysisTimeout)
	defer cancel()

	proposal, err := h.client.SubmitProposal(submitCtx, api.ProposalInput{
		RFPID:       st.SelectedRFPID,
		VendorID:    vendorID,
		RawResponse: text,
	})
	if err != nil {
		stdErr := apperrors.NewAPIRequestError(api.OpSubmitProposal, AlertSubmitFailed, err)
		st.Fail(h.errors.HandleActionError(ViewName, "submit", stdErr))
		return stdErr
	}

	h.logger.Info("proposal analyzed", map[string]interface{}{
		"proposalId": proposal.ID,
		"rfpId":      proposal.RFPID,
		"vendorId":   proposal.VendorID,
	})

	st.Text = ""
	st.Succeed(AlertSubmitted)

	loadCtx, cancelLoad := context.WithTimeout(ctx, h.config.Timeout)
	defer cancelLoad()
	_ = h.loadProposals(loadCtx, st)
	return nil
}

// Compare ranks every proposal of the selected RFP. It is only offered once
// CanCompare holds.
func (h *Handler) Compare(ctx context.Context, st *State) (err error) {
	done := h.obs.Track(ctx, ViewName, "compare")
	rejected := false
	defer func() { done(err, rejected) }()

	if !st.CanCompare() {
		rejected = true
		fields := map[string]string{"compare": "At least two proposals are needed to compare."}
		st.Reject(fields)
		return apperrors.NewValidationError("comparison not available", fields)
	}

	st.Begin()
	ctx, cancel := context.WithTimeout(ctx, h.config.AnalysisTimeout)
	defer cancel()

	result, err := h.client.CompareProposals(ctx, st.SelectedRFPID)
	if err != nil {
		stdErr := apperrors.NewAPIRequestError(api.OpCompareProposals, AlertCompareFailed, err)
		st.Fail(h.errors.HandleActionError(ViewName, "compare", stdErr))
		return stdErr
	}

	st.Comparison = result
	st.Succeed("")
	return nil
}
