// internal/views/rfp-dashboard/handler.go
package rfpdashboard

import (
	"context"
	"fmt"

	"rfp-console/internal/api"
	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/observability"
)

const (
	ViewName = "rfp-dashboard"

	AlertSendFailed = "Failed to send RFP. Check backend logs."
)

type APIClient interface {
	ListRFPs(ctx context.Context) ([]api.RFP, error)
	ListVendors(ctx context.Context) ([]api.Vendor, error)
	SendRFP(ctx context.Context, rfpID int64, vendorIDs []int64) (*api.SendResult, error)
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

// Load fetches RFPs and vendors. Either list is replaced only when its own
// fetch succeeds.
func (h *Handler) Load(ctx context.Context, st *State) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	var firstErr error
	rfps, err := h.client.ListRFPs(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch RFPs", map[string]interface{}{"error": err})
		firstErr = err
	} else {
		st.RFPs = rfps
	}

	vendors, err := h.client.ListVendors(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch vendors", map[string]interface{}{"error": err})
		if firstErr == nil {
			firstErr = err
		}
	} else {
		st.Vendors = vendors
	}
	return firstErr
}

// OpenSend opens the vendor picker for rfpID with an empty selection.
func (h *Handler) OpenSend(st *State, rfpID int64) error {
	for _, r := range st.RFPs {
		if r.ID == rfpID {
			st.Send = &SendSurface{RFPID: r.ID, RFPTitle: r.Title}
			st.FieldErrors = nil
			return nil
		}
	}
	return fmt.Errorf("rfp %d is not on the dashboard", rfpID)
}

// Toggle adds or removes vendorID from the selection.
func (h *Handler) Toggle(st *State, vendorID int64) {
	if st.Send == nil {
		return
	}
	for i, id := range st.Send.Selected {
		if id == vendorID {
			st.Send.Selected = append(st.Send.Selected[:i], st.Send.Selected[i+1:]...)
			return
		}
	}
	st.Send.Selected = append(st.Send.Selected, vendorID)
}

// Select replaces the whole selection, as a submitted checkbox list does.
func (h *Handler) Select(st *State, vendorIDs []int64) {
	if st.Send == nil {
		return
	}
	st.Send.Selected = nil
	for _, id := range vendorIDs {
		if !st.Send.IsSelected(id) {
			st.Send.Selected = append(st.Send.Selected, id)
		}
	}
}

func (h *Handler) Cancel(st *State) {
	st.Send = nil
	st.FieldErrors = nil
}

// Confirm sends the RFP to every selected vendor in one call. An empty
// selection is rejected without touching the network.
func (h *Handler) Confirm(ctx context.Context, st *State) (err error) {
	done := h.obs.Track(ctx, ViewName, "send")
	rejected := false
	defer func() { done(err, rejected) }()

	if fields := ValidateSend(st.Send); fields != nil {
		rejected = true
		st.Reject(fields)
		return apperrors.NewValidationError("send rejected", fields)
	}

	st.Begin()
	sendCtx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	surface := st.Send
	result, err := h.client.SendRFP(sendCtx, surface.RFPID, surface.Selected)
	if err != nil {
		stdErr := apperrors.NewAPIRequestError(api.OpSendRFP, AlertSendFailed, err)
		st.Fail(h.errors.HandleActionError(ViewName, "send", stdErr))
		return stdErr
	}

	h.logger.Info("RFP sent", map[string]interface{}{
		"rfpId":     surface.RFPID,
		"vendorIds": surface.Selected,
		"message":   result.Message,
	})

	st.Send = nil
	st.Succeed(fmt.Sprintf("RFP Sent to %d vendors!", len(surface.Selected)))
	_ = h.Load(ctx, st)
	return nil
}
