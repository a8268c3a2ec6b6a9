package notification

import (
	"time"

	"github.com/m04kA/venuebook/internal/domain"
)

// Kind тип уведомления
type Kind string

const (
	KindBookingConfirmed Kind = domain.NotificationBookingConfirmed
	KindBookingCancelled Kind = domain.NotificationBookingCancelled
)

// Notification уведомление пользователю
type Notification struct {
	UserID  int64
	Kind    Kind
	Payload Payload
}

// Payload данные брони в уведомлении
type Payload struct {
	BookingRef     string    `json:"bookingRef"`
	ReservationIDs []int64   `json:"reservationIds"`
	CourtID        int64     `json:"courtId"`
	VenueID        int64     `json:"venueId"`
	Date           string    `json:"date"`
	Slots          []string  `json:"slots"`
	TotalPrice     string    `json:"totalPrice"`
	Currency       string    `json:"currency"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// message тело сообщения в брокере
type message struct {
	UserID  int64   `json:"userId"`
	Kind    Kind    `json:"kind"`
	Payload Payload `json:"payload"`
}

// RoutingKey ключ маршрутизации: booking.<kind>
func (n Notification) RoutingKey() string {
	return "booking." + string(n.Kind)
}
