package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/ledger"
	"github.com/m04kA/venuebook/pkg/logger"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Cancel(ctx context.Context, id int64, actor domain.Actor) (*domain.Reservation, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockLedger) CancelBooking(ctx context.Context, ref string, actor domain.Actor) ([]*domain.Reservation, error) {
	args := m.Called(ctx, ref, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

const bookingRef = "3f1c2a9e-5b7d-4e8f-9a0b-1c2d3e4f5a6b"

var actor = domain.Actor{UserID: 100, Role: "user"}

func serve(h *Handler, id string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/bookings/"+id+"/cancel", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Cancelled(t *testing.T) {
	svc := new(MockLedger)
	cancelledAt := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	svc.On("Cancel", mock.Anything, int64(5), actor).
		Return(&domain.Reservation{ID: 5, Status: domain.StatusCancelled, CancelledAt: &cancelledAt}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), "5")
	require.Equal(t, http.StatusOK, w.Code)

	var resp CancelResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Cancelled)
	assert.Equal(t, "5", resp.BookingID)
	assert.Equal(t, []int64{5}, resp.ReservationIDs)
	assert.Equal(t, "2026-10-18T10:00:00Z", resp.CancelledAt)
}

func TestHandle_CancelledByBookingRef(t *testing.T) {
	svc := new(MockLedger)
	cancelledAt := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	svc.On("CancelBooking", mock.Anything, bookingRef, actor).Return([]*domain.Reservation{
		{ID: 5, BookingRef: bookingRef, Status: domain.StatusCancelled, CancelledAt: &cancelledAt},
		{ID: 6, BookingRef: bookingRef, Status: domain.StatusCancelled, CancelledAt: &cancelledAt},
	}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), bookingRef)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CancelResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Cancelled)
	assert.Equal(t, bookingRef, resp.BookingID)
	assert.Equal(t, []int64{5, 6}, resp.ReservationIDs)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandle_BookingRefErrors(t *testing.T) {
	svc := new(MockLedger)
	svc.On("CancelBooking", mock.Anything, bookingRef, actor).Return(nil, ledger.ErrAlreadyCancelled)

	w := serve(NewHandler(svc, logger.NewNop()), bookingRef)

	assert.Equal(t, http.StatusConflict, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, handlers.CodeAlreadyCancelled, body.Error)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", ledger.ErrNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"forbidden", ledger.ErrForbidden, http.StatusForbidden, handlers.CodeForbidden},
		{"too late", fmt.Errorf("%w: cancellation closes 24h0m0s before start", ledger.ErrTooLateToCancel), http.StatusConflict, handlers.CodeTooLateToCancel},
		{"already cancelled", ledger.ErrAlreadyCancelled, http.StatusConflict, handlers.CodeAlreadyCancelled},
		{"unavailable", ledger.ErrUnavailable, http.StatusServiceUnavailable, handlers.CodeStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedger)
			svc.On("Cancel", mock.Anything, int64(5), actor).Return(nil, tt.err)

			w := serve(NewHandler(svc, logger.NewNop()), "5")
			assert.Equal(t, tt.wantStatus, w.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error)
		})
	}
}

func TestHandle_TooLateMessageStatesCutoff(t *testing.T) {
	svc := new(MockLedger)
	svc.On("Cancel", mock.Anything, int64(5), actor).
		Return(nil, fmt.Errorf("%w: cancellation closes 24h0m0s before start", ledger.ErrTooLateToCancel))

	w := serve(NewHandler(svc, logger.NewNop()), "5")

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body.Message, "24h")
}

func TestHandle_InvalidID(t *testing.T) {
	svc := new(MockLedger)
	w := serve(NewHandler(svc, logger.NewNop()), "abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything)
}
