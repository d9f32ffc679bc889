// internal/views/vendor-manager/handler.go
package vendormanager

import (
	"context"
	"strings"

	"rfp-console/internal/api"
	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/observability"
)

const (
	ViewName = "vendor-manager"

	AlertCreateFailed = "Failed to create vendor"
)

// APIClient is the part of the RFP service this view talks to.
type APIClient interface {
	CreateVendor(ctx context.Context, vendor api.Vendor) (*api.Vendor, error)
	ListVendors(ctx context.Context) ([]api.Vendor, error)
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

// Load refreshes the vendor list. A failed fetch is logged and the list
// already on screen is kept.
func (h *Handler) Load(ctx context.Context, st *State) error {
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	vendors, err := h.client.ListVendors(ctx)
	if err != nil {
		h.logger.Error("Failed to fetch vendors", map[string]interface{}{"error": err})
		return err
	}
	st.Vendors = vendors
	return nil
}

// Create validates the form and registers the vendor. Invalid input never
// reaches the network.
func (h *Handler) Create(ctx context.Context, st *State, form Form) (err error) {
	done := h.obs.Track(ctx, ViewName, "create")
	rejected := false
	defer func() { done(err, rejected) }()

	form.ContactPerson = strings.TrimSpace(form.ContactPerson)
	st.Form = form

	if fields := ValidateForm(form); fields != nil {
		rejected = true
		st.Reject(fields)
		return apperrors.NewValidationError("vendor form rejected", fields)
	}

	st.Begin()
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	created, err := h.client.CreateVendor(ctx, api.Vendor{
		Name:          form.Name,
		Email:         form.Email,
		ContactPerson: form.ContactPerson,
	})
	if err != nil {
		stdErr := apperrors.NewAPIRequestError(api.OpCreateVendor, AlertCreateFailed, err)
		st.Fail(h.errors.HandleActionError(ViewName, "create", stdErr))
		return stdErr
	}

	h.logger.Info("vendor created", map[string]interface{}{
		"vendorId": created.ID,
		"email":    created.Email,
	})

	st.Form = Form{}
	st.Succeed("")
	_ = h.Load(ctx, st)
	return nil
}
