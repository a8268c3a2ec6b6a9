package cancel_booking

import (
	"time"

	"github.com/m04kA/venuebook/internal/domain"
)

// CancelResponse HTTP response model
type CancelResponse struct {
	Cancelled      bool    `json:"cancelled"`
	BookingID      string  `json:"bookingId"` // как в пути: bookingRef или ID брони
	ReservationIDs []int64 `json:"reservationIds"`
	CancelledAt    string  `json:"cancelledAt,omitempty"`
}

func newCancelResponse(bookingID string, cancelled []*domain.Reservation) CancelResponse {
	resp := CancelResponse{
		Cancelled:      true,
		BookingID:      bookingID,
		ReservationIDs: make([]int64, 0, len(cancelled)),
	}
	for _, res := range cancelled {
		resp.ReservationIDs = append(resp.ReservationIDs, res.ID)
		if res.CancelledAt != nil {
			resp.CancelledAt = res.CancelledAt.UTC().Format(time.RFC3339)
		}
	}
	return resp
}
