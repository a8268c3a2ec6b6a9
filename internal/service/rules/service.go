package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/venuebook/internal/domain"
	rulesRepo "github.com/m04kA/venuebook/internal/infra/storage/rules"
	catalogClient "github.com/m04kA/venuebook/internal/integrations/catalog"
	"github.com/m04kA/venuebook/internal/service/rules/models"
	"github.com/m04kA/venuebook/pkg/ptr"
)

// Defaults глобальные правила из конфигурации сервиса
type Defaults struct {
	SlotMinutes         int
	MaxAdvanceDays      int
	MinNoticeMinutes    int
	CancelCutoffMinutes int
	// BucketMinutes шаг сетки занятости в хранилище: длительность слота должна быть ему кратна
	BucketMinutes int
}

// Service сервис правил бронирования площадок
type Service struct {
	rulesRepo     RulesRepository
	catalogClient CatalogClient
	defaults      Defaults
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	rulesRepo RulesRepository,
	catalogClient CatalogClient,
	defaults Defaults,
	logger Logger,
) *Service {
	return &Service{
		rulesRepo:     rulesRepo,
		catalogClient: catalogClient,
		defaults:      defaults,
		timeProvider:  realTimeProvider{},
		logger:        logger,
	}
}

// Effective действующие правила для корта
// Приоритет: корт > площадка > глобальные значения
func (s *Service) Effective(ctx context.Context, venueID, courtID int64) (*domain.BookingRules, error) {
	rules, err := s.rulesRepo.GetEffective(ctx, venueID, courtID)
	if err == nil {
		rules.GridMinutes = s.defaults.BucketMinutes
		return rules, nil
	}
	if errors.Is(err, rulesRepo.ErrRulesNotFound) {
		return s.defaultRules(venueID), nil
	}

	s.logger.Error("Effective: repository error for venue=%d court=%d: %v", venueID, courtID, err)
	return nil, fmt.Errorf("%w: Effective - repository error: %v", ErrUnavailable, err)
}

// List правила площадки
// Доступно владельцу площадки и администратору
func (s *Service) List(ctx context.Context, venueID int64, actor domain.Actor) (*models.RulesListResponse, error) {
	s.logger.Info("List: fetching rules for venue=%d by user=%d", venueID, actor.UserID)

	if err := s.checkVenueAccess(ctx, venueID, actor); err != nil {
		return nil, err
	}

	list, err := s.rulesRepo.ListByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("List: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrUnavailable, err)
	}

	return models.FromDomainRulesList(s.defaultRules(venueID), list), nil
}

// Upsert создает правила области или заменяет существующие
func (s *Service) Upsert(ctx context.Context, req *models.UpsertRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Upsert: venue=%d court=%d by user=%d", req.VenueID, ptr.Value(req.CourtID), req.Actor.UserID)

	// 1. Валидация значений
	if err := s.validate(req); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Права доступа
	if err := s.checkVenueAccess(ctx, req.VenueID, req.Actor); err != nil {
		return nil, err
	}

	// 3. Корт должен принадлежать площадке
	if req.CourtID != nil {
		if err := s.checkCourtInVenue(ctx, req.VenueID, *req.CourtID); err != nil {
			return nil, err
		}
	}

	now := s.timeProvider.Now().UTC()
	rules := req.ToDomainRules(now)

	// 4. Заменяем существующие правила или создаем новые
	existing, err := s.rulesRepo.GetByScope(ctx, req.VenueID, req.CourtID)
	switch {
	case err == nil:
		rules.ID = existing.ID
		rules.CreatedAt = existing.CreatedAt
		if _, err := s.rulesRepo.Update(ctx, rules); err != nil {
			s.logger.Error("Upsert: update failed for rules id=%d: %v", existing.ID, err)
			return nil, fmt.Errorf("%w: Upsert - update: %v", ErrUnavailable, err)
		}
	case errors.Is(err, rulesRepo.ErrRulesNotFound):
		if _, err := s.rulesRepo.Create(ctx, rules); err != nil {
			if errors.Is(err, rulesRepo.ErrDuplicateRules) {
				// Параллельный запрос успел создать правила
				return nil, fmt.Errorf("%w: rules were created concurrently, retry", ErrInvalidInput)
			}
			s.logger.Error("Upsert: create failed for venue=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: Upsert - create: %v", ErrUnavailable, err)
		}
	default:
		s.logger.Error("Upsert: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrUnavailable, err)
	}

	s.logger.Info("Upsert: saved rules id=%d for venue=%d court=%d", rules.ID, rules.VenueID, ptr.Value(rules.CourtID))
	return models.FromDomainRules(rules), nil
}

// Delete удаляет правила области, после чего действуют правила уровнем выше
func (s *Service) Delete(ctx context.Context, venueID int64, courtID *int64, actor domain.Actor) error {
	s.logger.Info("Delete: venue=%d court=%d by user=%d", venueID, ptr.Value(courtID), actor.UserID)

	if err := s.checkVenueAccess(ctx, venueID, actor); err != nil {
		return err
	}

	if err := s.rulesRepo.DeleteByScope(ctx, venueID, courtID); err != nil {
		if errors.Is(err, rulesRepo.ErrRulesNotFound) {
			return ErrRulesNotFound
		}
		s.logger.Error("Delete: repository error for venue=%d: %v", venueID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrUnavailable, err)
	}

	return nil
}

func (s *Service) defaultRules(venueID int64) *domain.BookingRules {
	return &domain.BookingRules{
		VenueID:             venueID,
		SlotMinutes:         s.defaults.SlotMinutes,
		MaxAdvanceDays:      s.defaults.MaxAdvanceDays,
		MinNoticeMinutes:    s.defaults.MinNoticeMinutes,
		CancelCutoffMinutes: s.defaults.CancelCutoffMinutes,
		GridMinutes:         s.defaults.BucketMinutes,
	}
}

func (s *Service) validate(req *models.UpsertRulesRequest) error {
	if req.SlotMinutes < domain.MinSlotMinutes || req.SlotMinutes > domain.MaxSlotMinutes {
		return fmt.Errorf("%w: slotMinutes must be between %d and %d", ErrInvalidInput, domain.MinSlotMinutes, domain.MaxSlotMinutes)
	}
	if s.defaults.BucketMinutes > 0 && req.SlotMinutes%s.defaults.BucketMinutes != 0 {
		return fmt.Errorf("%w: slotMinutes must be a multiple of %d", ErrInvalidInput, s.defaults.BucketMinutes)
	}
	if req.MaxAdvanceDays < 0 || req.MaxAdvanceDays > domain.MaxAdvanceDays {
		return fmt.Errorf("%w: maxAdvanceDays must be between 0 and %d", ErrInvalidInput, domain.MaxAdvanceDays)
	}
	if req.MinNoticeMinutes < 0 || req.MinNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minNoticeMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxNoticeMinutes)
	}
	if req.CancelCutoffMinutes < 0 || req.CancelCutoffMinutes > domain.MaxCancelCutoffMinutes {
		return fmt.Errorf("%w: cancelCutoffMinutes must be between 0 and %d", ErrInvalidInput, domain.MaxCancelCutoffMinutes)
	}
	return nil
}

// checkVenueAccess владелец площадки или администратор
func (s *Service) checkVenueAccess(ctx context.Context, venueID int64, actor domain.Actor) error {
	venue, err := s.catalogClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrVenueNotFound) {
			s.logger.Warn("checkVenueAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkVenueAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get venue: %v", ErrUnavailable, err)
	}

	if actor.IsAdmin() || venue.OwnerID == actor.UserID {
		return nil
	}

	s.logger.Warn("checkVenueAccess: user=%d is not an owner of venue=%d", actor.UserID, venueID)
	return ErrAccessDenied
}

func (s *Service) checkCourtInVenue(ctx context.Context, venueID, courtID int64) error {
	court, err := s.catalogClient.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCourtNotFound) {
			return ErrCourtNotFound
		}
		s.logger.Error("checkCourtInVenue: failed to get court id=%d: %v", courtID, err)
		return fmt.Errorf("%w: failed to get court: %v", ErrUnavailable, err)
	}
	if court.VenueID != venueID {
		s.logger.Warn("checkCourtInVenue: court id=%d belongs to venue=%d, not %d", courtID, court.VenueID, venueID)
		return ErrCourtNotFound
	}
	return nil
}
