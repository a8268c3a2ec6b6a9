package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	getAvailability "github.com/m04kA/venuebook/internal/usecase/get_availability"
	"github.com/m04kA/venuebook/pkg/types"
)

const (
	msgInvalidCourtID = "invalid court id"
	msgInvalidDate    = "date query parameter is required in YYYY-MM-DD format"
	msgCourtNotFound  = "court not found"
	msgVenueClosed    = "venue is closed on this date"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /venues/{courtId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	courtID, err := handlers.PathID(r, "courtId")
	if err != nil {
		h.logger.Warn("GET /venues/{courtId}/availability - %v", err)
		handlers.RespondBadRequest(w, msgInvalidCourtID)
		return
	}

	date, err := types.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /venues/{courtId}/availability - invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{CourtID: courtID, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /venues/{courtId}/availability - invalid input: court_id=%d, %v", courtID, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getAvailability.ErrCourtNotFound):
			h.logger.Warn("GET /venues/{courtId}/availability - court not found: court_id=%d", courtID)
			handlers.RespondNotFound(w, handlers.CodeCourtNotFound, msgCourtNotFound)

		case errors.Is(err, getAvailability.ErrVenueClosed):
			h.logger.Info("GET /venues/{courtId}/availability - venue closed: court_id=%d, date=%s", courtID, date)
			handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeVenueClosed, msgVenueClosed)

		case errors.Is(err, getAvailability.ErrUnavailable):
			h.logger.Error("GET /venues/{courtId}/availability - dependency unavailable: court_id=%d, error=%v", courtID, err)
			handlers.RespondUnavailable(w)

		default:
			h.logger.Error("GET /venues/{courtId}/availability - failed: court_id=%d, error=%v", courtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{courtId}/availability - court_id=%d, date=%s, slots=%d", courtID, date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
