package models

import (
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// Request модели

// ReserveRequest запрос на атомарный захват интервалов одного корта на одну дату
type ReserveRequest struct {
	BookingRef    string
	UserID        int64
	CourtID       int64
	VenueID       int64
	Date          types.Date
	Timezone      string
	Currency      string
	PaymentMethod domain.PaymentMethod
	PaymentToken  string
	Items         []ReserveItem
}

// ReserveItem непрерывный интервал и его цена
type ReserveItem struct {
	Interval domain.Interval
	Price    types.Money
}

// Intervals интервалы запроса
func (r *ReserveRequest) Intervals() []domain.Interval {
	intervals := make([]domain.Interval, 0, len(r.Items))
	for _, item := range r.Items {
		intervals = append(intervals, item.Interval)
	}
	return intervals
}

// ToDomainReservations одна бронь на каждый интервал, все с общим BookingRef
func (r *ReserveRequest) ToDomainReservations(now time.Time) []*domain.Reservation {
	list := make([]*domain.Reservation, 0, len(r.Items))
	for _, item := range r.Items {
		list = append(list, &domain.Reservation{
			BookingRef:    r.BookingRef,
			CourtID:       r.CourtID,
			VenueID:       r.VenueID,
			UserID:        r.UserID,
			Date:          r.Date,
			Interval:      item.Interval,
			Price:         item.Price,
			Currency:      r.Currency,
			Status:        domain.StatusConfirmed,
			Timezone:      r.Timezone,
			PaymentMethod: r.PaymentMethod,
			PaymentToken:  r.PaymentToken,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return list
}

// Response модели

// ReservationResponse бронь со статусом на момент чтения
type ReservationResponse struct {
	ID            int64       `json:"id"`
	BookingRef    string      `json:"bookingRef"`
	UserID        int64       `json:"userId"`
	CourtID       int64       `json:"courtId"`
	VenueID       int64       `json:"venueId"`
	Date          string      `json:"date"`  // "2026-10-20"
	Start         types.Clock `json:"start"` // "10:00"
	End           types.Clock `json:"end"`
	Price         types.Money `json:"price"`
	Currency      string      `json:"currency"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	CancelledAt   *string     `json:"cancelledAt,omitempty"` // ISO 8601
	CreatedAt     time.Time   `json:"createdAt"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// BookingResponse бронирование целиком: все брони с общим bookingRef
type BookingResponse struct {
	BookingID    string                `json:"bookingId"`
	TotalPrice   types.Money           `json:"totalPrice"`
	Currency     string                `json:"currency"`
	Reservations []ReservationResponse `json:"reservations"`
}

// FromDomainBooking собирает бронирование из его броней; отмененные в сумму не входят
func FromDomainBooking(list []*domain.Reservation, now time.Time) *BookingResponse {
	resp := &BookingResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.BookingID = r.BookingRef
		resp.Currency = r.Currency
		if r.IsActive() {
			resp.TotalPrice += r.Price
		}
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r, now))
	}
	return resp
}

// FromDomainReservation конвертирует domain модель в DTO
// completed вычисляется относительно now
func FromDomainReservation(r *domain.Reservation, now time.Time) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:            r.ID,
		BookingRef:    r.BookingRef,
		UserID:        r.UserID,
		CourtID:       r.CourtID,
		VenueID:       r.VenueID,
		Date:          r.Date.String(),
		Start:         r.Interval.Start,
		End:           r.Interval.End,
		Price:         r.Price,
		Currency:      r.Currency,
		Status:        string(r.EffectiveStatus(now)),
		PaymentMethod: string(r.PaymentMethod),
		CreatedAt:     r.CreatedAt,
	}

	if r.CancelledAt != nil {
		cancelledStr := r.CancelledAt.UTC().Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainReservationList конвертирует список броней в DTO
func FromDomainReservationList(list []*domain.Reservation, now time.Time) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r, now))
	}
	return resp
}
