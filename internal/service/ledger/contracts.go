package ledger

import (
	"context"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/integrations/notification"
	"github.com/m04kA/venuebook/pkg/types"
)

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByBookingRef(ctx context.Context, bookingRef string) ([]*domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	ListByCourtAndDate(ctx context.Context, courtID int64, date types.Date, includeCancelled bool) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, cancelledBy int64, at time.Time) error
}

// RulesProvider действующие правила бронирования корта
type RulesProvider interface {
	Effective(ctx context.Context, venueID, courtID int64) (*domain.BookingRules, error)
}

// CatalogClient интерфейс клиента каталога площадок
type CatalogClient interface {
	GetVenue(ctx context.Context, venueID int64) (*domain.Venue, error)
	GetCourt(ctx context.Context, courtID int64) (*domain.Court, error)
}

// Notifier фоновая отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
