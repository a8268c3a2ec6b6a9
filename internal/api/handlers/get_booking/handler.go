package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/service/ledger"
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

// Handle GET /bookings/{bookingId}
// По bookingRef отдает бронирование целиком, по числовому ID одну бронь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	bookingID, err := handlers.PathBookingKey(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, "invalid booking id")
		return
	}

	var result interface{}
	if bookingID.IsRef() {
		result, err = h.service.GetBooking(r.Context(), bookingID.Ref, actor)
	} else {
		result, err = h.service.Get(r.Context(), bookingID.ID, actor)
	}
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			handlers.RespondNotFound(w, handlers.CodeNotFound, "booking not found")
		case errors.Is(err, ledger.ErrForbidden):
			h.logger.Warn("GET /bookings/{id} - access denied: booking_id=%s, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, "access denied")
		case errors.Is(err, ledger.ErrUnavailable):
			h.logger.Error("GET /bookings/{id} - unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondUnavailable(w)
		default:
			h.logger.Error("GET /bookings/{id} - failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
