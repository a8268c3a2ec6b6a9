package models

import (
	"time"

	"github.com/m04kA/venuebook/internal/domain"
)

// Request модели

// UpsertRulesRequest запрос на создание или замену правил
// CourtID == nil - правила для всех кортов площадки
type UpsertRulesRequest struct {
	Actor               domain.Actor `json:"-"`
	VenueID             int64        `json:"-"`
	CourtID             *int64       `json:"courtId,omitempty"`
	SlotMinutes         int          `json:"slotMinutes"`
	MaxAdvanceDays      int          `json:"maxAdvanceDays"`
	MinNoticeMinutes    int          `json:"minNoticeMinutes"`
	CancelCutoffMinutes int          `json:"cancelCutoffMinutes"`
}

// ToDomainRules конвертирует запрос в доменную модель
func (r *UpsertRulesRequest) ToDomainRules(now time.Time) *domain.BookingRules {
	return &domain.BookingRules{
		VenueID:             r.VenueID,
		CourtID:             r.CourtID,
		SlotMinutes:         r.SlotMinutes,
		MaxAdvanceDays:      r.MaxAdvanceDays,
		MinNoticeMinutes:    r.MinNoticeMinutes,
		CancelCutoffMinutes: r.CancelCutoffMinutes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// Response модели

// RulesResponse правила бронирования
type RulesResponse struct {
	ID                  int64      `json:"id,omitempty"`
	VenueID             int64      `json:"venueId"`
	CourtID             *int64     `json:"courtId,omitempty"`
	SlotMinutes         int        `json:"slotMinutes"`
	MaxAdvanceDays      int        `json:"maxAdvanceDays"`
	MinNoticeMinutes    int        `json:"minNoticeMinutes"`
	CancelCutoffMinutes int        `json:"cancelCutoffMinutes"`
	CreatedAt           *time.Time `json:"createdAt,omitempty"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// RulesListResponse правила площадки и глобальные значения, действующие при их отсутствии
type RulesListResponse struct {
	Defaults RulesResponse   `json:"defaults"`
	Rules    []RulesResponse `json:"rules"`
}

// FromDomainRules конвертирует domain модель в DTO
// Правила по умолчанию (ID == 0) отдаются без дат
func FromDomainRules(r *domain.BookingRules) *RulesResponse {
	if r == nil {
		return nil
	}

	resp := &RulesResponse{
		ID:                  r.ID,
		VenueID:             r.VenueID,
		CourtID:             r.CourtID,
		SlotMinutes:         r.SlotMinutes,
		MaxAdvanceDays:      r.MaxAdvanceDays,
		MinNoticeMinutes:    r.MinNoticeMinutes,
		CancelCutoffMinutes: r.CancelCutoffMinutes,
	}
	if r.ID != 0 {
		createdAt, updatedAt := r.CreatedAt, r.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// FromDomainRulesList конвертирует список правил в DTO
func FromDomainRulesList(defaults *domain.BookingRules, list []*domain.BookingRules) *RulesListResponse {
	resp := &RulesListResponse{
		Defaults: *FromDomainRules(defaults),
		Rules:    make([]RulesResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Rules = append(resp.Rules, *FromDomainRules(r))
	}
	return resp
}
