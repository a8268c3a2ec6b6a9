package get_availability

import (
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// Request запрос на получение слотов корта
type Request struct {
	CourtID int64
	Date    types.Date
}

// Response слоты корта на дату в порядке начала
type Response struct {
	Court       *domain.Court
	Venue       *domain.Venue
	Date        types.Date
	SlotMinutes int
	Slots       []domain.Slot
}

// Find слот с точно таким интервалом
func (r *Response) Find(interval domain.Interval) (domain.Slot, bool) {
	for _, slot := range r.Slots {
		if slot.Interval == interval {
			return slot, true
		}
	}
	return domain.Slot{}, false
}
