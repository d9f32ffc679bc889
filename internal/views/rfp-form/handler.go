// internal/views/rfp-form/handler.go
package rfpform

import (
	"context"
	"encoding/json"
	"errors"

	"rfp-console/internal/api"
	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/observability"
)

const (
	ViewName = "rfp-form"

	AlertSaved      = "RFP Saved Successfully!"
	AlertSaveFailed = "Failed to save RFP"
)

// ErrNoDraft is returned by Save when there is nothing to save.
var ErrNoDraft = errors.New("no draft to save")

type APIClient interface {
	GenerateRFPStructure(ctx context.Context, naturalLanguageInput string) (*api.RFPSuggestion, error)
	CreateRFP(ctx context.Context, rfp api.RFP) (*api.RFP, error)
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

// Generate asks the service to structure input into a draft. Input shorter
// than MinInputLength is rejected locally. A failed call only logs; a
// degraded answer still yields an editable draft.
func (h *Handler) Generate(ctx context.Context, st *State, input string) (err error) {
	done := h.obs.Track(ctx, ViewName, "generate")
	rejected := false
	defer func() { done(err, rejected) }()

	st.Input = input
	if fields := ValidateInput(input); fields != nil {
		rejected = true
		st.Reject(fields)
		return apperrors.NewValidationError("rfp request rejected", fields)
	}

	st.Begin()
	ctx, cancel := context.WithTimeout(ctx, h.config.GenerateTimeout)
	defer cancel()

	suggestion, err := h.client.GenerateRFPStructure(ctx, input)
	if err != nil {
		stdErr := apperrors.NewAPIRequestError(api.OpGenerateRFP, "Failed to generate RFP", err)
		h.errors.HandleActionError(ViewName, "generate", stdErr)
		st.Fail("")
		return stdErr
	}

	st.Draft = draftFromSuggestion(suggestion)
	if st.Draft.Degraded() {
		h.logger.Warn("AI generation degraded", map[string]interface{}{"aiError": st.Draft.Error})
	}
	st.Succeed("")
	return nil
}

// ApplyEdit overwrites the draft fields set in e.
func (h *Handler) ApplyEdit(st *State, e Edit) {
	if st.Draft == nil {
		return
	}
	if e.Title != nil {
		st.Draft.Title = *e.Title
	}
	if e.Description != nil {
		st.Draft.Description = *e.Description
	}
	if e.Budget != nil {
		st.Draft.Budget = *e.Budget
	}
	if e.Currency != nil {
		st.Draft.Currency = *e.Currency
	}
}

// Discard drops the current draft.
func (h *Handler) Discard(st *State) {
	st.Draft = nil
	st.FieldErrors = nil
}

// Save posts the draft as a new RFP. On success the draft is cleared; on
// failure it is kept for another attempt.
func (h *Handler) Save(ctx context.Context, st *State) (err error) {
	if st.Draft == nil {
		return ErrNoDraft
	}

	done := h.obs.Track(ctx, ViewName, "save")
	rejected := false
	defer func() { done(err, rejected) }()

	budget, ok := ParseBudget(st.Draft.Budget)
	if !ok {
		rejected = true
		fields := map[string]string{"budget": MsgBudgetNumber}
		st.Reject(fields)
		return apperrors.NewValidationError("budget is not a number", fields)
	}

	currency := st.Draft.Currency
	if currency == "" {
		currency = h.config.DefaultCurrency
	}

	data, err := json.Marshal(structuredData{
		Title:        st.Draft.Title,
		Description:  st.Draft.Description,
		Budget:       budget,
		Currency:     currency,
		Requirements: st.Draft.Requirements,
		Error:        st.Draft.Error,
	})
	if err != nil {
		return apperrors.Normalize(err)
	}
	structured := string(data)

	st.Begin()
	ctx, cancel := context.WithTimeout(ctx, h.config.SaveTimeout)
	defer cancel()

	created, err := h.client.CreateRFP(ctx, api.RFP{
		Title:          st.Draft.Title,
		Description:    st.Draft.Description,
		Budget:         budget,
		Currency:       currency,
		StructuredData: &structured,
	})
	if err != nil {
		stdErr := apperrors.NewAPIRequestError(api.OpCreateRFP, AlertSaveFailed, err)
		st.Fail(h.errors.HandleActionError(ViewName, "save", stdErr))
		return stdErr
	}

	h.logger.Info("RFP saved", map[string]interface{}{
		"rfpId":    created.ID,
		"title":    created.Title,
		"degraded": st.Draft.Degraded(),
	})
	st.Draft = nil
	st.Succeed(AlertSaved)
	return nil
}
