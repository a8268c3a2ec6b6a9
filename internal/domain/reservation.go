package domain

import (
	"time"

	"github.com/m04kA/venuebook/pkg/types"
)

// ReservationStatus статус брони, хранимый в БД
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	// StatusCompleted не хранится, вычисляется при чтении для прошедших броней
	StatusCompleted ReservationStatus = "completed"
)

// ParseReservationStatus проверяет строковый статус
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusConfirmed, StatusCancelled, StatusCompleted:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
	PaymentPayPal PaymentMethod = "paypal"
)

// Reservation непрерывный интервал на одном корте в один день
// Одна операция бронирования создает по одной записи на каждый непрерывный отрезок слотов,
// все они делят общий BookingRef
type Reservation struct {
	ID         int64
	BookingRef string
	CourtID    int64
	VenueID    int64
	UserID     int64
	Date       types.Date
	Interval   Interval
	Price      types.Money
	Currency   string
	Status     ReservationStatus
	Timezone   string // часовой пояс площадки на момент бронирования

	PaymentMethod PaymentMethod
	PaymentToken  string

	CancelledAt *time.Time
	CancelledBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location часовой пояс площадки, при ошибке UTC
func (r *Reservation) Location() *time.Location {
	if r.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// StartsAt момент начала брони
func (r *Reservation) StartsAt() time.Time {
	return r.Date.At(r.Interval.Start, r.Location())
}

// EndsAt момент окончания брони
func (r *Reservation) EndsAt() time.Time {
	return r.Date.At(r.Interval.End, r.Location())
}

// IsActive бронь занимает корт
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed
}

// EffectiveStatus статус для отображения: подтвержденная бронь, которая уже закончилась, - completed
func (r *Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == StatusConfirmed && !r.EndsAt().After(now) {
		return StatusCompleted
	}
	return r.Status
}

// CancelDeadline последний момент, когда бронь еще можно отменить
func (r *Reservation) CancelDeadline(cutoff time.Duration) time.Time {
	return r.StartsAt().Add(-cutoff)
}

// UserReservationsFilter фильтр истории бронирований пользователя
type UserReservationsFilter struct {
	UserID int64
	Status *ReservationStatus // nil - все статусы
}
