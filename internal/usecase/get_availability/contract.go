package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// CatalogClient интерфейс клиента каталога площадок
type CatalogClient interface {
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
	GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error)
}

// Ledger чтение подтвержденных броней корта
type Ledger interface {
	ListForCourt(ctx context.Context, courtID int64, date types.Date) ([]*domain.Reservation, error)
}

// RulesProvider действующие правила бронирования корта
type RulesProvider interface {
	Effective(ctx context.Context, venueID, courtID int64) (*domain.BookingRules, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
