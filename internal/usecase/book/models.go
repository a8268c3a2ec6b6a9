package book

import (
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// Request модель запроса на бронирование
type Request struct {
	Actor         domain.Actor         // Пользователь из токена
	UserID        int64                // Для кого бронь
	CourtID       int64                // ID корта
	Date          types.Date           // Дата бронирования
	Slots         []domain.Interval    // Выбранные слоты
	PaymentMethod domain.PaymentMethod // card, wallet, paypal
	PaymentToken  string               // Токен провайдера оплаты (опционально для offline)
}

// QuoteRequest модель запроса на расчет стоимости
type QuoteRequest struct {
	CourtID int64
	Date    types.Date
	Slots   []domain.Interval
}

// Response модель ответа с созданной бронью
type Response struct {
	BookingRef     string            // Общий идентификатор бронирования
	TotalPrice     types.Money       // Сумма по всем слотам
	Currency       string            // Валюта
	ReservedSlots  []domain.Interval // Забронированные слоты
	ReservationIDs []int64           // По одной брони на непрерывный отрезок
}

// QuoteResponse модель ответа с расчетом стоимости
type QuoteResponse struct {
	TotalPrice types.Money
	Currency   string
	Slots      []domain.Slot
}

// selection проверенный выбор слотов
type selection struct {
	slots    []domain.Slot
	runs     []run
	total    types.Money
	currency string
}

// run непрерывный отрезок из соседних слотов
type run struct {
	interval domain.Interval
	price    types.Money
}
