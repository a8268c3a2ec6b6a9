package book

import (
	"context"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/integrations/notification"
	"github.com/m04kA/venuebook/internal/integrations/payment"
	ledgerModels "github.com/m04kA/venuebook/internal/service/ledger/models"
	"github.com/m04kA/venuebook/internal/usecase/get_availability"
)

// AvailabilityEngine расчет слотов корта
type AvailabilityEngine interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// Ledger атомарный захват интервалов
type Ledger interface {
	TryReserve(ctx context.Context, req *ledgerModels.ReserveRequest) ([]*domain.Reservation, error)
}

// PaymentAuthorizer авторизация оплаты до записи брони
type PaymentAuthorizer interface {
	Authorize(ctx context.Context, req payment.Request) (*payment.Authorization, error)
}

// Notifier фоновая отправка уведомлений
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification)
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	IncBooking(outcome string)
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
