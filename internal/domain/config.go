package domain

import "time"

// BookingRules правила бронирования площадки
// Иерархия применения:
// 1. Правила конкретного корта (venue_id, court_id)
// 2. Правила всей площадки (venue_id, NULL)
// 3. Глобальные значения из конфигурации сервиса
type BookingRules struct {
	ID                  int64
	VenueID             int64
	CourtID             *int64 // NULL = правила для всех кортов площадки
	SlotMinutes         int
	MaxAdvanceDays      int // 0 = без ограничения
	MinNoticeMinutes    int
	CancelCutoffMinutes int
	GridMinutes         int // шаг сетки занятости хранилища, не хранится в правилах
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsVenueWide правила действуют на всю площадку
func (r *BookingRules) IsVenueWide() bool {
	return r.CourtID == nil
}

// HasAdvanceLimit есть ограничение на бронирование заранее
func (r *BookingRules) HasAdvanceLimit() bool {
	return r.MaxAdvanceDays > 0
}

// CancelCutoff окно до начала, в котором отмена запрещена
func (r *BookingRules) CancelCutoff() time.Duration {
	return time.Duration(r.CancelCutoffMinutes) * time.Minute
}
