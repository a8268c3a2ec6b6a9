package get_availability

import (
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// generateIntervals нарезает рабочие часы на слоты фиксированной длины
// Последний неполный слот отбрасывается, за время закрытия слоты не выходят
func generateIntervals(hours domain.Interval, slotMinutes int) []domain.Interval {
	intervals := make([]domain.Interval, 0)
	if slotMinutes <= 0 {
		return intervals
	}

	for start := hours.Start; ; {
		end, err := start.AddMinutes(slotMinutes)
		if err != nil || end.IsAfter(hours.End) {
			break
		}
		intervals = append(intervals, domain.Interval{Start: start, End: end})
		start = end
	}

	return intervals
}

// buildSlots помечает занятость и цену каждого слота
//
// Слот занят, если строго пересекается с подтвержденной бронью:
// - слот 10:00-11:00, бронь 10:30-11:30 → занят
// - слот 10:00-11:00, бронь 09:00-10:00 → свободен (граничат)
//
// Слот недоступен и тогда, когда его начало раньше earliest (прошло или слишком близко)
func buildSlots(
	intervals []domain.Interval,
	reservations []*domain.Reservation,
	court *domain.Court,
	date types.Date,
	loc *time.Location,
	earliest time.Time,
) []domain.Slot {
	slots := make([]domain.Slot, len(intervals))

	for i, interval := range intervals {
		available := !date.At(interval.Start, loc).Before(earliest)
		if available {
			for _, res := range reservations {
				if res.IsActive() && res.Interval.Overlaps(interval) {
					available = false
					break
				}
			}
		}

		slots[i] = domain.Slot{
			Interval:  interval,
			Available: available,
			Price:     court.PriceFor(interval),
		}
	}

	return slots
}
