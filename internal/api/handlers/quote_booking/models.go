package quote_booking

import (
	"github.com/m04kA/venuebook/internal/api/handlers/create_booking"
	"github.com/m04kA/venuebook/internal/usecase/book"
	"github.com/m04kA/venuebook/pkg/types"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	CourtID int64                    `json:"courtId" validate:"required,gt=0"`
	Date    types.Date               `json:"date"`
	Slots   []create_booking.SlotDTO `json:"slots" validate:"required,min=1,max=24"`
}

// QuoteSlot слот с ценой
type QuoteSlot struct {
	Start types.Clock `json:"start"`
	End   types.Clock `json:"end"`
	Price types.Money `json:"price"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	TotalPrice types.Money `json:"totalPrice"`
	Currency   string      `json:"currency"`
	Slots      []QuoteSlot `json:"slots"`
}

func (r *QuoteRequest) ToUseCaseRequest() *book.QuoteRequest {
	return &book.QuoteRequest{
		CourtID: r.CourtID,
		Date:    r.Date,
		Slots:   create_booking.ToIntervals(r.Slots),
	}
}

func FromUseCaseResponse(resp *book.QuoteResponse) *QuoteResponse {
	out := &QuoteResponse{
		TotalPrice: resp.TotalPrice,
		Currency:   resp.Currency,
		Slots:      make([]QuoteSlot, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, QuoteSlot{Start: s.Interval.Start, End: s.Interval.End, Price: s.Price})
	}
	return out
}
