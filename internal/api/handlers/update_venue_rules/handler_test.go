package update_venue_rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/rules"
	"github.com/m04kA/venuebook/internal/service/rules/models"
	"github.com/m04kA/venuebook/pkg/logger"
)

type MockRules struct {
	mock.Mock
}

func (m *MockRules) Upsert(ctx context.Context, req *models.UpsertRulesRequest) (*models.RulesResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RulesResponse), args.Error(1)
}

func (m *MockRules) Delete(ctx context.Context, venueID int64, courtID *int64, actor domain.Actor) error {
	return m.Called(ctx, venueID, courtID, actor).Error(0)
}

var owner = domain.Actor{UserID: 50, Role: "owner"}

func serve(h *Handler, method, target, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/venues/{venueId}/rules", h.Handle).Methods(http.MethodPut)
	r.HandleFunc("/venues/{venueId}/rules", h.HandleDelete).Methods(http.MethodDelete)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), owner))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Upsert(t *testing.T) {
	svc := new(MockRules)
	svc.On("Upsert", mock.Anything, mock.MatchedBy(func(req *models.UpsertRulesRequest) bool {
		return req.VenueID == 3 && req.CourtID != nil && *req.CourtID == 7 &&
			req.SlotMinutes == 30 && req.CancelCutoffMinutes == 720 && req.Actor == owner
	})).Return(&models.RulesResponse{ID: 1, VenueID: 3, SlotMinutes: 30}, nil)

	w := serve(NewHandler(svc, logger.NewNop()), http.MethodPut, "/venues/3/rules",
		`{"courtId":7,"slotMinutes":30,"maxAdvanceDays":14,"minNoticeMinutes":60,"cancelCutoffMinutes":720}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slotMinutes":30`)
	svc.AssertExpectations(t)
}

func TestHandle_UpsertErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{"zero slot", `{"slotMinutes":0}`, nil, http.StatusBadRequest},
		{"negative notice", `{"slotMinutes":30,"minNoticeMinutes":-1}`, nil, http.StatusBadRequest},
		{"service validation", `{"slotMinutes":7}`, rules.ErrInvalidInput, http.StatusBadRequest},
		{"not owner", `{"slotMinutes":30}`, rules.ErrAccessDenied, http.StatusForbidden},
		{"foreign court", `{"courtId":9,"slotMinutes":30}`, rules.ErrCourtNotFound, http.StatusNotFound},
		{"unavailable", `{"slotMinutes":30}`, rules.ErrUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockRules)
			if tt.err != nil {
				svc.On("Upsert", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			w := serve(NewHandler(svc, logger.NewNop()), http.MethodPut, "/venues/3/rules", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandleDelete(t *testing.T) {
	svc := new(MockRules)
	svc.On("Delete", mock.Anything, int64(3), mock.MatchedBy(func(id *int64) bool { return id != nil && *id == 7 }), owner).Return(nil)
	svc.On("Delete", mock.Anything, int64(3), (*int64)(nil), owner).Return(rules.ErrRulesNotFound)

	h := NewHandler(svc, logger.NewNop())

	w := serve(h, http.MethodDelete, "/venues/3/rules?courtId=7", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(h, http.MethodDelete, "/venues/3/rules", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(h, http.MethodDelete, "/venues/3/rules?courtId=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
