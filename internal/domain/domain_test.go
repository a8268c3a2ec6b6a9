package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/venuebook/pkg/types"
)

func interval(start, end string) Interval {
	return Interval{Start: types.MustParseClock(start), End: types.MustParseClock(end)}
}

func TestInterval_Overlaps(t *testing.T) {
	base := interval("10:00", "11:00")

	assert.True(t, base.Overlaps(interval("10:30", "11:30")))
	assert.True(t, base.Overlaps(interval("09:00", "12:00")))
	assert.False(t, base.Overlaps(interval("11:00", "12:00")), "touching at end is adjacent")
	assert.False(t, base.Overlaps(interval("09:00", "10:00")), "touching at start is adjacent")
}

func TestInterval_AlignTo(t *testing.T) {
	aligned, ok := interval("09:07", "21:58").AlignTo(5)
	assert.True(t, ok)
	assert.Equal(t, interval("09:10", "21:55"), aligned)

	aligned, ok = interval("09:00", "22:00").AlignTo(15)
	assert.True(t, ok)
	assert.Equal(t, interval("09:00", "22:00"), aligned)

	_, ok = interval("09:01", "09:04").AlignTo(5)
	assert.False(t, ok)

	aligned, ok = interval("09:07", "10:07").AlignTo(1)
	assert.True(t, ok)
	assert.Equal(t, interval("09:07", "10:07"), aligned)
}

func TestMergeAdjacent(t *testing.T) {
	merged := MergeAdjacent([]Interval{
		interval("11:00", "12:00"),
		interval("09:00", "10:00"),
		interval("10:00", "11:00"),
		interval("14:00", "15:00"),
	})

	assert.Equal(t, []Interval{interval("09:00", "12:00"), interval("14:00", "15:00")}, merged)
	assert.Nil(t, MergeAdjacent(nil))
}

func TestAnyOverlap(t *testing.T) {
	assert.False(t, AnyOverlap([]Interval{interval("09:00", "10:00"), interval("10:00", "11:00")}))
	assert.True(t, AnyOverlap([]Interval{interval("09:00", "10:30"), interval("10:00", "11:00")}))
}

func TestVenue_HoursOn(t *testing.T) {
	venue := Venue{Open: types.MustParseClock("09:00"), Close: types.MustParseClock("22:00")}

	hours, open := venue.HoursOn(types.MustParseDate("2026-10-20"))
	assert.True(t, open)
	assert.Equal(t, interval("09:00", "22:00"), hours)

	late := types.MustParseClock("23:00")
	venue.Calendar = []CalendarDay{
		{Date: types.MustParseDate("2026-10-20"), Close: &late},
		{Date: types.MustParseDate("2026-10-21"), Closed: true},
	}

	hours, open = venue.HoursOn(types.MustParseDate("2026-10-20"))
	assert.True(t, open)
	assert.Equal(t, interval("09:00", "23:00"), hours)

	_, open = venue.HoursOn(types.MustParseDate("2026-10-21"))
	assert.False(t, open, "closed in calendar")

	_, open = venue.HoursOn(types.MustParseDate("2026-10-22"))
	assert.False(t, open, "absent from calendar")
}

func TestCourt_PriceFor(t *testing.T) {
	court := Court{
		PricePerHour: 40000,
		PriceBands:   []PriceBand{{Interval: interval("18:00", "22:00"), PricePerHour: 60000}},
	}

	assert.Equal(t, types.Money(40000), court.PriceFor(interval("10:00", "11:00")))
	assert.Equal(t, types.Money(30000), court.PriceFor(interval("18:00", "18:30")))
	assert.Equal(t, types.Money(40000), court.PriceFor(interval("17:30", "18:30")), "band must contain the slot")
}

func TestReservation_EffectiveStatus(t *testing.T) {
	r := Reservation{
		Date:     types.MustParseDate("2026-10-20"),
		Interval: interval("10:00", "11:00"),
		Status:   StatusConfirmed,
		Timezone: "UTC",
	}

	assert.Equal(t, StatusConfirmed, r.EffectiveStatus(time.Date(2026, 10, 20, 10, 59, 0, 0, time.UTC)))
	assert.Equal(t, StatusCompleted, r.EffectiveStatus(time.Date(2026, 10, 20, 11, 0, 0, 0, time.UTC)))

	r.Status = StatusCancelled
	assert.Equal(t, StatusCancelled, r.EffectiveStatus(time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)))
}
