package get_availability

import (
	getAvailability "github.com/m04kA/venuebook/internal/usecase/get_availability"
	"github.com/m04kA/venuebook/pkg/types"
)

// SlotResponse слот корта
type SlotResponse struct {
	Start     types.Clock `json:"start"`
	End       types.Clock `json:"end"`
	Available bool        `json:"available"`
	Price     types.Money `json:"price"`
}

// FromUseCaseResponse слоты в порядке начала
func FromUseCaseResponse(resp *getAvailability.Response) []SlotResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Start:     s.Interval.Start,
			End:       s.Interval.End,
			Available: s.Available,
			Price:     s.Price,
		})
	}
	return slots
}
