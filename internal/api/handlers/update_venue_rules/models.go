package update_venue_rules

import (
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/service/rules/models"
)

// UpdateRulesRequest HTTP request model
// Отсутствующий courtId - правила для всей площадки
type UpdateRulesRequest struct {
	CourtID             *int64 `json:"courtId,omitempty" validate:"omitempty,gt=0"`
	SlotMinutes         int    `json:"slotMinutes" validate:"required,gt=0"`
	MaxAdvanceDays      int    `json:"maxAdvanceDays" validate:"gte=0"`
	MinNoticeMinutes    int    `json:"minNoticeMinutes" validate:"gte=0"`
	CancelCutoffMinutes int    `json:"cancelCutoffMinutes" validate:"gte=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateRulesRequest) ToServiceRequest(venueID int64, actor domain.Actor) *models.UpsertRulesRequest {
	return &models.UpsertRulesRequest{
		Actor:               actor,
		VenueID:             venueID,
		CourtID:             r.CourtID,
		SlotMinutes:         r.SlotMinutes,
		MaxAdvanceDays:      r.MaxAdvanceDays,
		MinNoticeMinutes:    r.MinNoticeMinutes,
		CancelCutoffMinutes: r.CancelCutoffMinutes,
	}
}
