package get_court_reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/ledger"
	"github.com/m04kA/venuebook/internal/service/ledger/models"
	"github.com/m04kA/venuebook/pkg/logger"
	"github.com/m04kA/venuebook/pkg/types"
)

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) CourtSchedule(ctx context.Context, courtID int64, date types.Date, actor domain.Actor) (*models.ReservationListResponse, error) {
	args := m.Called(ctx, courtID, date, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationListResponse), args.Error(1)
}

var owner = domain.Actor{UserID: 11, Role: "owner"}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/courts/{courtId}/reservations", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithActor(req.Context(), owner))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Schedule(t *testing.T) {
	svc := new(MockLedger)
	svc.On("CourtSchedule", mock.Anything, int64(7), types.MustParseDate("2026-10-20"), owner).
		Return(&models.ReservationListResponse{Reservations: []models.ReservationResponse{
			{ID: 1, CourtID: 7, Status: "confirmed"},
			{ID: 2, CourtID: 7, Status: "cancelled"},
		}}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), "/courts/7/reservations?date=2026-10-20")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.ReservationResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "cancelled", resp[1].Status)
}

func TestHandle_ScheduleErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"court not found", ledger.ErrNotFound, http.StatusNotFound, handlers.CodeCourtNotFound},
		{"not the venue owner", ledger.ErrForbidden, http.StatusForbidden, handlers.CodeForbidden},
		{"unavailable", ledger.ErrUnavailable, http.StatusServiceUnavailable, handlers.CodeStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLedger)
			svc.On("CourtSchedule", mock.Anything, int64(7), mock.Anything, owner).Return(nil, tt.err)

			w := serve(NewHandler(svc, logger.NewNop()), "/courts/7/reservations?date=2026-10-20")

			assert.Equal(t, tt.wantStatus, w.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error)
		})
	}
}

func TestHandle_ScheduleBadRequest(t *testing.T) {
	for _, target := range []string{
		"/courts/abc/reservations?date=2026-10-20",
		"/courts/7/reservations",
		"/courts/7/reservations?date=20-10-2026",
	} {
		svc := new(MockLedger)

		w := serve(NewHandler(svc, logger.NewNop()), target)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		svc.AssertNotCalled(t, "CourtSchedule", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}
