package catalog

import (
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// Court модель корта из каталога
type Court struct {
	ID             int64           `json:"id"`
	VenueID        int64           `json:"venueId"`
	Name           string          `json:"name"`
	Sport          string          `json:"sport"`
	PricePerHour   types.Money     `json:"pricePerHour"`
	Currency       string          `json:"currency"`
	PriceOverrides []PriceOverride `json:"priceOverrides"`
}

// PriceOverride особая ставка на часть дня
type PriceOverride struct {
	StartTime    types.Clock `json:"startTime"`
	EndTime      types.Clock `json:"endTime"`
	PricePerHour types.Money `json:"pricePerHour"`
}

// Venue модель площадки из каталога
type Venue struct {
	ID        int64         `json:"id"`
	OwnerID   int64         `json:"ownerId"`
	Name      string        `json:"name"`
	OpenTime  types.Clock   `json:"openTime"`
	CloseTime types.Clock   `json:"closeTime"`
	Timezone  string        `json:"timezone"`
	Calendar  []CalendarDay `json:"calendar"`
}

// CalendarDay запись календаря работы площадки
type CalendarDay struct {
	Date      types.Date   `json:"date"`
	Closed    bool         `json:"closed"`
	OpenTime  *types.Clock `json:"openTime,omitempty"`
	CloseTime *types.Clock `json:"closeTime,omitempty"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует корт в доменную модель
// Полосы с некорректным интервалом отбрасываются
func (c *Court) ToDomain() *domain.Court {
	court := &domain.Court{
		ID:           c.ID,
		VenueID:      c.VenueID,
		Name:         c.Name,
		Sport:        c.Sport,
		PricePerHour: c.PricePerHour,
		Currency:     c.Currency,
	}
	for _, o := range c.PriceOverrides {
		interval, ok := domain.NewInterval(o.StartTime, o.EndTime)
		if !ok {
			continue
		}
		court.PriceBands = append(court.PriceBands, domain.PriceBand{Interval: interval, PricePerHour: o.PricePerHour})
	}
	return court
}

// ToDomain конвертирует площадку в доменную модель
func (v *Venue) ToDomain() *domain.Venue {
	venue := &domain.Venue{
		ID:       v.ID,
		OwnerID:  v.OwnerID,
		Name:     v.Name,
		Open:     v.OpenTime,
		Close:    v.CloseTime,
		Timezone: v.Timezone,
	}
	for _, d := range v.Calendar {
		venue.Calendar = append(venue.Calendar, domain.CalendarDay{
			Date:   d.Date,
			Closed: d.Closed,
			Open:   d.OpenTime,
			Close:  d.CloseTime,
		})
	}
	return venue
}
