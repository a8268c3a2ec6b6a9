package domain

import (
	"sort"

	"github.com/m04kA/venuebook/pkg/types"
)

// Interval полуоткрытый интервал [Start, End) внутри суток
type Interval struct {
	Start types.Clock
	End   types.Clock
}

// NewInterval создает интервал и проверяет Start < End
func NewInterval(start, end types.Clock) (Interval, bool) {
	if !start.IsBefore(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Minutes длительность интервала
func (i Interval) Minutes() int {
	return i.End.Minutes() - i.Start.Minutes()
}

// Overlaps строгое пересечение: интервалы, касающиеся границами, не пересекаются
// 10:00-11:00 и 11:00-12:00 - соседние, а не пересекающиеся
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// Contains other целиком внутри i
func (i Interval) Contains(other Interval) bool {
	return !other.Start.IsBefore(i.Start) && !other.End.IsAfter(i.End)
}

// AlignTo сужает интервал до сетки step минут: начало округляется вверх, конец вниз
// Если внутри не остается ни одного шага, возвращает false
func (i Interval) AlignTo(step int) (Interval, bool) {
	if step <= 1 {
		return i, i.Start.IsBefore(i.End)
	}
	start := (i.Start.Minutes() + step - 1) / step * step
	end := i.End.Minutes() / step * step
	if start >= end {
		return Interval{}, false
	}
	return Interval{Start: types.Clock(start), End: types.Clock(end)}, true
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// MergeAdjacent сортирует интервалы и склеивает соседние (конец одного = начало другого)
// Пересекающиеся интервалы не склеиваются - их нужно отсеять до вызова
func MergeAdjacent(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}
	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start < sorted[b].Start })

	merged := []Interval{sorted[0]}
	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]
		if cur.Start == last.End {
			last.End = cur.End
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// AnyOverlap проверяет, пересекаются ли какие-либо два интервала из списка
func AnyOverlap(intervals []Interval) bool {
	for a := 0; a < len(intervals); a++ {
		for b := a + 1; b < len(intervals); b++ {
			if intervals[a].Overlaps(intervals[b]) {
				return true
			}
		}
	}
	return false
}

// Slot временной слот с доступностью и ценой
type Slot struct {
	Interval  Interval
	Available bool
	Price     types.Money
}
