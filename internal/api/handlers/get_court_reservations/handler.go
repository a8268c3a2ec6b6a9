package get_court_reservations

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/service/ledger"
	"github.com/m04kA/venuebook/pkg/types"
)

type Handler struct {
	service LedgerService
	logger  Logger
}

func NewHandler(service LedgerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /courts/{courtId}/reservations?date=YYYY-MM-DD
// Расписание корта для владельца площадки, включая отмененные брони
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	courtID, err := handlers.PathID(r, "courtId")
	if err != nil {
		handlers.RespondBadRequest(w, "invalid court id")
		return
	}
	date, err := types.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, "date query parameter is required in YYYY-MM-DD format")
		return
	}

	result, err := h.service.CourtSchedule(r.Context(), courtID, date, actor)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			handlers.RespondNotFound(w, handlers.CodeCourtNotFound, "court not found")
		case errors.Is(err, ledger.ErrForbidden):
			h.logger.Warn("GET /courts/{courtId}/reservations - access denied: court_id=%d, user_id=%d", courtID, actor.UserID)
			handlers.RespondForbidden(w, "only the venue owner can view the court schedule")
		case errors.Is(err, ledger.ErrUnavailable):
			h.logger.Error("GET /courts/{courtId}/reservations - unavailable: court_id=%d, error=%v", courtID, err)
			handlers.RespondUnavailable(w)
		default:
			h.logger.Error("GET /courts/{courtId}/reservations - failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result.Reservations)
}
