package rfpdashboard

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

func (m *MockAPI) ListRFPs(ctx context.Context) ([]api.RFP, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.RFP), args.Error(1)
}

func (m *MockAPI) ListVendors(ctx context.Context) ([]api.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.Vendor), args.Error(1)
}

func (m *MockAPI) SendRFP(ctx context.Context, rfpID int64, vendorIDs []int64) (*api.SendResult, error) {
	args := m.Called(ctx, rfpID, vendorIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SendResult), args.Error(1)
}

// ==========================
// Test Helper Functions
// ==========================

func newTestHandler(t *testing.T, client *MockAPI) *Handler {
	return NewHandler(LoadConfig(), client, logger.NewTestLogger(t), nil)
}

func budget(v float64) *float64 { return &v }

func loadedState() *State {
	st := NewState()
	st.RFPs = []api.RFP{
		{ID: 1, Title: "Laptops", Description: "20 laptops", Budget: budget(50000), Currency: "USD", Status: api.StatusDraft},
		{ID: 2, Title: "Chairs", Description: "Office chairs", Status: api.StatusOpen},
	}
	st.Vendors = []api.Vendor{
		{ID: 10, Name: "Acme", Email: "a@acme.com"},
		{ID: 11, Name: "Globex", Email: "g@globex.com"},
	}
	return st
}

// ==========================
// Rendering Tests
// ==========================

func TestNewCard(t *testing.T) {
	tests := []struct {
		name        string
		rfp         api.RFP
		expectBudg  string
		expectLabel string
	}{
		{
			name:        "draft with budget",
			rfp:         api.RFP{Status: api.StatusDraft, Budget: budget(50000), Currency: "USD"},
			expectBudg:  "Budget: 50000 USD",
			expectLabel: SendLabel,
		},
		{
			name:        "open without budget",
			rfp:         api.RFP{Status: api.StatusOpen},
			expectBudg:  "Budget: N/A",
			expectLabel: SendMoreLabel,
		},
		{
			name:        "zero budget shows N/A",
			rfp:         api.RFP{Status: api.StatusClosed, Budget: budget(0), Currency: "EUR"},
			expectBudg:  "Budget: N/A",
			expectLabel: SendLabel,
		},
		{
			name:        "fractional budget",
			rfp:         api.RFP{Status: api.StatusAwarded, Budget: budget(1250.5), Currency: "GBP"},
			expectBudg:  "Budget: 1250.5 GBP",
			expectLabel: SendLabel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCard(tt.rfp)
			assert.Equal(t, tt.expectBudg, card.Budget)
			assert.Equal(t, tt.expectLabel, card.SendLabel)
			assert.Equal(t, "Status: "+tt.rfp.Status, card.Status)
		})
	}
}

// ==========================
// Send Surface Tests
// ==========================

func TestHandler_SendSurface(t *testing.T) {
	h := newTestHandler(t, new(MockAPI))
	st := loadedState()

	assert.Error(t, h.OpenSend(st, 99))
	assert.Nil(t, st.Send)

	require.NoError(t, h.OpenSend(st, 1))
	require.NotNil(t, st.Send)
	assert.Equal(t, `Send "Laptops"`, st.Send.Heading())
	assert.False(t, st.Send.CanConfirm())

	h.Toggle(st, 10)
	h.Toggle(st, 11)
	assert.Equal(t, []int64{10, 11}, st.Send.Selected)
	assert.Equal(t, "Send to 2 Vendors", st.Send.ConfirmLabel())

	h.Toggle(st, 10)
	assert.Equal(t, []int64{11}, st.Send.Selected)
	assert.True(t, st.Send.IsSelected(11))

	require.NoError(t, h.OpenSend(st, 2))
	assert.Empty(t, st.Send.Selected, "reopening resets the selection")

	h.Select(st, []int64{10, 10, 11})
	assert.Equal(t, []int64{10, 11}, st.Send.Selected)

	h.Cancel(st)
	assert.Nil(t, st.Send)
	h.Toggle(st, 10)
	assert.Nil(t, st.Send)
}

func TestHandler_Confirm_EmptySelectionSkipsNetwork(t *testing.T) {
	client := new(MockAPI)
	h := newTestHandler(t, client)
	st := loadedState()
	require.NoError(t, h.OpenSend(st, 1))

	err := h.Confirm(context.Background(), st)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, MsgSelectVendor, st.FieldError("vendor_ids"))
	assert.NotNil(t, st.Send)
	client.AssertNotCalled(t, "SendRFP", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Confirm_NoSurface(t *testing.T) {
	client := new(MockAPI)
	err := newTestHandler(t, client).Confirm(context.Background(), loadedState())
	require.Error(t, err)
	client.AssertNotCalled(t, "SendRFP", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_Confirm_Success(t *testing.T) {
	client := new(MockAPI)
	client.On("SendRFP", mock.Anything, int64(1), []int64{10, 11}).
		Return(&api.SendResult{Message: "RFP sent to 2 vendors", Status: "success"}, nil).Once()

	refreshed := []api.RFP{{ID: 1, Title: "Laptops", Status: api.StatusOpen}}
	client.On("ListRFPs", mock.Anything).Return(refreshed, nil).Once()
	client.On("ListVendors", mock.Anything).Return([]api.Vendor{{ID: 10}, {ID: 11}}, nil).Once()

	h := newTestHandler(t, client)
	st := loadedState()
	require.NoError(t, h.OpenSend(st, 1))
	h.Toggle(st, 10)
	h.Toggle(st, 11)

	require.NoError(t, h.Confirm(context.Background(), st))

	assert.Nil(t, st.Send, "surface closes and selection clears")
	assert.Equal(t, viewstate.StatusSuccess, st.Status)
	assert.Equal(t, "RFP Sent to 2 vendors!", st.TakeAlert())
	assert.Equal(t, refreshed, st.RFPs)
	assert.Equal(t, SendMoreLabel, st.Cards()[0].SendLabel)
	client.AssertExpectations(t)
}

func TestHandler_Confirm_Failure(t *testing.T) {
	client := new(MockAPI)
	client.On("SendRFP", mock.Anything, int64(1), []int64{10}).Return(nil, errors.New("HTTP 500"))

	h := newTestHandler(t, client)
	st := loadedState()
	require.NoError(t, h.OpenSend(st, 1))
	h.Toggle(st, 10)

	require.Error(t, h.Confirm(context.Background(), st))
	assert.Equal(t, AlertSendFailed, st.TakeAlert())
	require.NotNil(t, st.Send, "surface stays open")
	assert.Equal(t, []int64{10}, st.Send.Selected)
	client.AssertNotCalled(t, "ListRFPs", mock.Anything)
}

func TestHandler_Load_PartialFailure(t *testing.T) {
	client := new(MockAPI)
	client.On("ListRFPs", mock.Anything).Return(nil, errors.New("down"))
	client.On("ListVendors", mock.Anything).Return([]api.Vendor{{ID: 3, Name: "New"}}, nil)

	st := loadedState()
	err := newTestHandler(t, client).Load(context.Background(), st)
	assert.Error(t, err)
	assert.Len(t, st.RFPs, 2, "rfp list kept")
	assert.Equal(t, []api.Vendor{{ID: 3, Name: "New"}}, st.Vendors)
}
