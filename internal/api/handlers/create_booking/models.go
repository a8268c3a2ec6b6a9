package create_booking

import (
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/usecase/book"
	"github.com/m04kA/venuebook/pkg/types"
)

// SlotDTO интервал слота
type SlotDTO struct {
	Start types.Clock `json:"start"`
	End   types.Clock `json:"end"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	UserID        int64      `json:"userId" validate:"required,gt=0"`
	CourtID       int64      `json:"courtId" validate:"required,gt=0"`
	Date          types.Date `json:"date"`
	Slots         []SlotDTO  `json:"slots" validate:"required,min=1,max=24"`
	PaymentMethod string     `json:"paymentMethod" validate:"required,oneof=card wallet paypal"`
	PaymentToken  string     `json:"paymentToken,omitempty" validate:"omitempty,max=255"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID      string      `json:"bookingId"`
	TotalPrice     types.Money `json:"totalPrice"`
	Currency       string      `json:"currency"`
	ReservedSlots  []SlotDTO   `json:"reservedSlots"`
	ReservationIDs []int64     `json:"reservationIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) *book.Request {
	return &book.Request{
		Actor:         actor,
		UserID:        r.UserID,
		CourtID:       r.CourtID,
		Date:          r.Date,
		Slots:         ToIntervals(r.Slots),
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
		PaymentToken:  r.PaymentToken,
	}
}

// ToIntervals слоты запроса в доменные интервалы
func ToIntervals(slots []SlotDTO) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(slots))
	for _, s := range slots {
		intervals = append(intervals, domain.Interval{Start: s.Start, End: s.End})
	}
	return intervals
}

// FromIntervals доменные интервалы в DTO
func FromIntervals(intervals []domain.Interval) []SlotDTO {
	slots := make([]SlotDTO, 0, len(intervals))
	for _, i := range intervals {
		slots = append(slots, SlotDTO{Start: i.Start, End: i.End})
	}
	return slots
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *book.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:      resp.BookingRef,
		TotalPrice:     resp.TotalPrice,
		Currency:       resp.Currency,
		ReservedSlots:  FromIntervals(resp.ReservedSlots),
		ReservationIDs: resp.ReservationIDs,
	}
}
