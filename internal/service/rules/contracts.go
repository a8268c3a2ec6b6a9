package rules

import (
	"context"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
)

// RulesRepository интерфейс репозитория правил бронирования
type RulesRepository interface {
	Create(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
	GetByScope(ctx context.Context, venueID int64, courtID *int64) (*domain.BookingRules, error)
	GetEffective(ctx context.Context, venueID, courtID int64) (*domain.BookingRules, error)
	ListByVenue(ctx context.Context, venueID int64) ([]*domain.BookingRules, error)
	Update(ctx context.Context, rules *domain.BookingRules) (*domain.BookingRules, error)
	DeleteByScope(ctx context.Context, venueID int64, courtID *int64) error
}

// CatalogClient интерфейс клиента каталога площадок
type CatalogClient interface {
	GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error)
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
