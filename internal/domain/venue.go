package domain

import (
	"time"

	"github.com/m04kA/venuebook/pkg/types"
)

// Venue площадка из каталога
type Venue struct {
	ID       int64
	OwnerID  int64
	Name     string
	Open     types.Clock
	Close    types.Clock
	Timezone string
	// Calendar необязательный календарь работы
	// Если он задан, площадка открыта только в перечисленные в нем дни
	Calendar []CalendarDay
}

// CalendarDay исключение из обычного графика на конкретную дату
type CalendarDay struct {
	Date   types.Date
	Closed bool
	Open   *types.Clock
	Close  *types.Clock
}

// Location часовой пояс площадки, при ошибке UTC
func (v *Venue) Location() *time.Location {
	if v.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(v.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HoursOn рабочие часы на дату; false - площадка закрыта
func (v *Venue) HoursOn(date types.Date) (Interval, bool) {
	open, close := v.Open, v.Close

	if len(v.Calendar) > 0 {
		day, ok := v.calendarDay(date)
		if !ok || day.Closed {
			return Interval{}, false
		}
		if day.Open != nil {
			open = *day.Open
		}
		if day.Close != nil {
			close = *day.Close
		}
	}

	return NewInterval(open, close)
}

func (v *Venue) calendarDay(date types.Date) (CalendarDay, bool) {
	for _, d := range v.Calendar {
		if d.Date.Equal(date) {
			return d, true
		}
	}
	return CalendarDay{}, false
}

// Court корт площадки
type Court struct {
	ID           int64
	VenueID      int64
	Name         string
	Sport        string
	PricePerHour types.Money
	Currency     string
	PriceBands   []PriceBand
}

// PriceBand особая часовая ставка на интервал (например, вечерний пик)
type PriceBand struct {
	Interval     Interval
	PricePerHour types.Money
}

// PriceFor стоимость интервала: ставка полосы, целиком содержащей интервал, иначе базовая ставка
func (c *Court) PriceFor(interval Interval) types.Money {
	rate := c.PricePerHour
	for _, band := range c.PriceBands {
		if band.Interval.Contains(interval) {
			rate = band.PricePerHour
			break
		}
	}
	return rate.PerHour(interval.Minutes())
}
