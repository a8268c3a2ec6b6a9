package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/venuebook/internal/api/handlers"
	"github.com/m04kA/venuebook/internal/usecase/book"
)

const (
	msgSlotConflict  = "this slot was just taken, please choose another"
	msgInvalidSlots  = "requested slots are not available for booking"
	msgPaymentFailed = "payment was not authorized"
	msgCourtNotFound = "court not found"
	msgVenueClosed   = "venue is closed on this date"
	msgForbidden     = "cannot book on behalf of another user"
)

// RespondBookError ответ на ошибку сценария бронирования, общий для бронирования и расчета стоимости
func RespondBookError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, book.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())
	case errors.Is(err, book.ErrForbidden):
		handlers.RespondForbidden(w, msgForbidden)
	case errors.Is(err, book.ErrCourtNotFound):
		handlers.RespondNotFound(w, handlers.CodeCourtNotFound, msgCourtNotFound)
	case errors.Is(err, book.ErrVenueClosed):
		handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeVenueClosed, msgVenueClosed)
	case errors.Is(err, book.ErrInvalidSlots):
		handlers.RespondError(w, http.StatusUnprocessableEntity, handlers.CodeInvalidSlots, msgInvalidSlots)
	case errors.Is(err, book.ErrSlotConflict):
		handlers.RespondError(w, http.StatusConflict, handlers.CodeSlotConflict, msgSlotConflict)
	case errors.Is(err, book.ErrPaymentFailed):
		handlers.RespondError(w, http.StatusPaymentRequired, handlers.CodePaymentFailed, msgPaymentFailed)
	case errors.Is(err, book.ErrUnavailable):
		handlers.RespondUnavailable(w)
	default:
		handlers.RespondInternalError(w)
	}
}
