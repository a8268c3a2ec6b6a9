package get_user_bookings

import (
	"context"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/ledger/models"
)

type LedgerService interface {
	ListForUser(ctx context.Context, userID int64, status *string, actor domain.Actor) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
