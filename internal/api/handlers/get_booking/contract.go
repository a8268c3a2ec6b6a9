package get_booking

import (
	"context"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/ledger/models"
)

type LedgerService interface {
	Get(ctx context.Context, reservationID int64, actor domain.Actor) (*models.ReservationResponse, error)
	GetBooking(ctx context.Context, bookingRef string, actor domain.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
