package vendormanager

import (
	"context"
	"errors"
	"testing"

	"rfp-console/internal/api"
	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/logger"
	"rfp-console/internal/common/viewstate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mock API Client
// ==========================

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) CreateVendor(ctx context.Context, vendor api.Vendor) (*api.Vendor, error) {
	args := m.Called(ctx, vendor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.Vendor), args.Error(1)
}

func (m *MockAPI) ListVendors(ctx context.Context) ([]api.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Vendor), args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T, client *MockAPI) *Handler {
	return NewHandler(LoadConfig(), client, logger.NewTestLogger(t), nil)
}

var acme = api.Vendor{ID: 1, Name: "Acme Corp", Email: "sales@acme.com"}

// ==========================
// Validation Tests
// ==========================

func TestValidateForm(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		expect map[string]string
	}{
		{
			name: "valid without contact",
			form: Form{Name: "Acme Corp", Email: "sales@acme.com"},
		},
		{
			name: "valid with contact",
			form: Form{Name: "Ab", Email: "a.b+rfp@corp.co.uk", ContactPerson: "Jane"},
		},
		{
			name:   "empty name",
			form:   Form{Name: "", Email: "sales@acme.com"},
			expect: map[string]string{"name": MsgNameTooShort},
		},
		{
			name:   "single character name",
			form:   Form{Name: "A", Email: "sales@acme.com"},
			expect: map[string]string{"name": MsgNameTooShort},
		},
		{
			name:   "email without domain",
			form:   Form{Name: "Acme", Email: "sales@"},
			expect: map[string]string{"email": MsgInvalidEmail},
		},
		{
			name:   "email without tld",
			form:   Form{Name: "Acme", Email: "sales@acme"},
			expect: map[string]string{"email": MsgInvalidEmail},
		},
		{
			name:   "both invalid",
			form:   Form{Name: "x", Email: "nope"},
			expect: map[string]string{"name": MsgNameTooShort, "email": MsgInvalidEmail},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ValidateForm(tt.form))
		})
	}
}

// ==========================
// Handler Tests
// ==========================

func TestHandler_Create_InvalidFormSkipsNetwork(t *testing.T) {
	client := new(MockAPI)
	h := newTestHandler(t, client)
	st := NewState()

	err := h.Create(context.Background(), st, Form{Name: "A", Email: "bad"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	assert.Equal(t, viewstate.StatusError, st.Status)
	assert.Equal(t, MsgNameTooShort, st.FieldError("name"))
	assert.Equal(t, MsgInvalidEmail, st.FieldError("email"))
	assert.Equal(t, "A", st.Form.Name, "typed input is kept")
	assert.Empty(t, st.Alert)

	client.AssertNotCalled(t, "CreateVendor", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "ListVendors", mock.Anything)
}

func TestHandler_Create_Success(t *testing.T) {
	client := new(MockAPI)
	client.On("CreateVendor", mock.Anything, api.Vendor{Name: "Acme Corp", Email: "sales@acme.com", ContactPerson: "Jane"}).
		Return(&acme, nil).Once()
	client.On("ListVendors", mock.Anything).Return([]api.Vendor{acme}, nil).Once()

	h := newTestHandler(t, client)
	st := NewState()
	st.Reject(map[string]string{"name": "old"})

	err := h.Create(context.Background(), st, Form{Name: "Acme Corp", Email: "sales@acme.com", ContactPerson: "  Jane "})
	require.NoError(t, err)

	assert.Equal(t, viewstate.StatusSuccess, st.Status)
	assert.Equal(t, Form{}, st.Form, "form is cleared")
	assert.Empty(t, st.FieldErrors)
	assert.Equal(t, []api.Vendor{acme}, st.Vendors)
	assert.Equal(t, "Registered Vendors (1)", st.Heading())
	client.AssertExpectations(t)
}

func TestHandler_Create_APIFailure(t *testing.T) {
	client := new(MockAPI)
	client.On("CreateVendor", mock.Anything, mock.Anything).Return(nil, errors.New("HTTP 400")).Once()

	h := newTestHandler(t, client)
	st := NewState()
	st.Vendors = []api.Vendor{acme}

	form := Form{Name: "Globex", Email: "hi@globex.com"}
	err := h.Create(context.Background(), st, form)
	require.Error(t, err)

	assert.Equal(t, viewstate.StatusError, st.Status)
	assert.Equal(t, AlertCreateFailed, st.TakeAlert())
	assert.Equal(t, form, st.Form, "form is kept for another try")
	assert.Equal(t, []api.Vendor{acme}, st.Vendors)
	client.AssertNotCalled(t, "ListVendors", mock.Anything)
}

func TestHandler_Load(t *testing.T) {
	t.Run("replaces list", func(t *testing.T) {
		client := new(MockAPI)
		client.On("ListVendors", mock.Anything).Return([]api.Vendor{acme}, nil)

		st := NewState()
		require.NoError(t, newTestHandler(t, client).Load(context.Background(), st))
		assert.Len(t, st.Vendors, 1)
	})

	t.Run("failure keeps list and status", func(t *testing.T) {
		client := new(MockAPI)
		client.On("ListVendors", mock.Anything).Return(nil, errors.New("connection refused"))

		st := NewState()
		st.Vendors = []api.Vendor{acme}
		err := newTestHandler(t, client).Load(context.Background(), st)

		assert.Error(t, err)
		assert.Equal(t, []api.Vendor{acme}, st.Vendors)
		assert.Equal(t, viewstate.StatusIdle, st.Status)
		assert.Empty(t, st.Alert)
	})
}

func TestState_Heading(t *testing.T) {
	st := NewState()
	assert.Equal(t, "Registered Vendors (0)", st.Heading())
}
