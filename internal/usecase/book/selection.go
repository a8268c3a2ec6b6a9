package book

import (
	"fmt"
	"sort"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/usecase/get_availability"
)

// validateSlots проверяет форму выбора до обращения к каталогу и хранилищу
func validateSlots(slots []domain.Interval) error {
	if len(slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(slots) > domain.MaxSlotsPerBooking {
		return fmt.Errorf("%w: at most %d slots per booking", ErrInvalidInput, domain.MaxSlotsPerBooking)
	}

	seen := make(map[domain.Interval]struct{}, len(slots))
	for _, slot := range slots {
		if !slot.Start.IsBefore(slot.End) {
			return fmt.Errorf("%w: slot %s has non-positive length", ErrInvalidInput, slot)
		}
		if _, dup := seen[slot]; dup {
			return fmt.Errorf("%w: slot %s requested twice", ErrInvalidSlots, slot)
		}
		seen[slot] = struct{}{}
	}
	return nil
}

// selectSlots сверяет выбор с текущей доступностью и объединяет соседние слоты
// Каждый запрошенный слот должен точно совпадать со свободным слотом из расчета
func selectSlots(availability *get_availability.Response, requested []domain.Interval) (*selection, error) {
	sel := &selection{currency: availability.Court.Currency}

	for _, interval := range requested {
		slot, ok := availability.Find(interval)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not an offered slot", ErrInvalidSlots, interval)
		}
		if !slot.Available {
			return nil, fmt.Errorf("%w: %s is not available", ErrInvalidSlots, interval)
		}
		sel.slots = append(sel.slots, slot)
		sel.total += slot.Price
	}

	sort.Slice(sel.slots, func(a, b int) bool { return sel.slots[a].Interval.Start < sel.slots[b].Interval.Start })

	// Цена отрезка - сумма цен его слотов, а не пересчет по ставке
	for _, merged := range domain.MergeAdjacent(requested) {
		r := run{interval: merged}
		for _, slot := range sel.slots {
			if merged.Contains(slot.Interval) {
				r.price += slot.Price
			}
		}
		sel.runs = append(sel.runs, r)
	}

	return sel, nil
}

func (s *selection) intervals() []domain.Interval {
	list := make([]domain.Interval, 0, len(s.slots))
	for _, slot := range s.slots {
		list = append(list, slot.Interval)
	}
	return list
}

func (s *selection) labels() []string {
	list := make([]string, 0, len(s.slots))
	for _, slot := range s.slots {
		list = append(list, slot.Interval.String())
	}
	return list
}
