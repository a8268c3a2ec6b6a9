package cancel_booking

import (
	"context"

	"github.com/m04kA/venuebook/internal/domain"
)

type LedgerService interface {
	Cancel(ctx context.Context, reservationID int64, actor domain.Actor) (*domain.Reservation, error)
	CancelBooking(ctx context.Context, bookingRef string, actor domain.Actor) ([]*domain.Reservation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
