package get_court_reservations

import (
	"context"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/ledger/models"
	"github.com/m04kA/venuebook/pkg/types"
)

type LedgerService interface {
	CourtSchedule(ctx context.Context, courtID int64, date types.Date, actor domain.Actor) (*models.ReservationListResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
