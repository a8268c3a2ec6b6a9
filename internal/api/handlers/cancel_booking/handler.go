package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/api/middleware"
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/ledger"
)

const (
	msgInvalidBookingID = "invalid booking id"
	msgNotFound         = "booking not found"
	msgForbidden        = "access denied"
	msgAlreadyCancelled = "booking is already cancelled"
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

// Handle POST /bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	bookingID, err := handlers.PathBookingKey(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var cancelled []*domain.Reservation
	if bookingID.IsRef() {
		cancelled, err = h.service.CancelBooking(r.Context(), bookingID.Ref, actor)
	} else {
		var res *domain.Reservation
		if res, err = h.service.Cancel(r.Context(), bookingID.ID, actor); err == nil {
			cancelled = []*domain.Reservation{res}
		}
	}
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			h.logger.Warn("POST /bookings/{id}/cancel - not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, handlers.CodeNotFound, msgNotFound)
		case errors.Is(err, ledger.ErrForbidden):
			h.logger.Warn("POST /bookings/{id}/cancel - access denied: booking_id=%s, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
		case errors.Is(err, ledger.ErrTooLateToCancel):
			h.logger.Warn("POST /bookings/{id}/cancel - too late: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeTooLateToCancel, err.Error())
		case errors.Is(err, ledger.ErrAlreadyCancelled):
			h.logger.Warn("POST /bookings/{id}/cancel - already cancelled: booking_id=%s", bookingID)
			handlers.RespondError(w, http.StatusConflict, handlers.CodeAlreadyCancelled, msgAlreadyCancelled)
		case errors.Is(err, ledger.ErrUnavailable):
			h.logger.Error("POST /bookings/{id}/cancel - unavailable: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondUnavailable(w)
		default:
			h.logger.Error("POST /bookings/{id}/cancel - failed: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - cancelled: booking_id=%s, reservations=%d, by user_id=%d",
		bookingID, len(cancelled), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, newCancelResponse(bookingID.String(), cancelled))
}
