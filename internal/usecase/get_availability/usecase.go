package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	catalogClient "github.com/m04kA/venuebook/internal/integrations/catalog"
	"github.com/m04kA/venuebook/pkg/types"
)

// UseCase расчет свободных слотов корта на дату
// Только чтение: повторный вызов без записей между ними дает тот же результат
type UseCase struct {
	catalogClient CatalogClient
	ledger        Ledger
	rules         RulesProvider
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogClient CatalogClient,
	ledger Ledger,
	rules RulesProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogClient: catalogClient,
		ledger:        ledger,
		rules:         rules,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: court=%d, date=%s", req.CourtID, req.Date)

	// 1. Валидация входных данных
	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем корт и площадку
	court, venue, err := uc.courtWithVenue(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	loc := venue.Location()

	// 4. Правила бронирования с учетом иерархии
	rules, err := uc.rules.Effective(ctx, venue.ID, court.ID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get rules for venue=%d court=%d: %v", venue.ID, court.ID, err)
		return nil, fmt.Errorf("%w: failed to get rules: %v", ErrUnavailable, err)
	}

	// 5. Дата не дальше горизонта бронирования
	today := types.NewDate(now.In(loc))
	if rules.HasAdvanceLimit() && today.DaysUntil(req.Date) > rules.MaxAdvanceDays {
		uc.logger.Warn("GetAvailability: date %s is beyond %d days", req.Date, rules.MaxAdvanceDays)
		return nil, fmt.Errorf("%w: date is more than %d days ahead", ErrInvalidInput, rules.MaxAdvanceDays)
	}

	// 6. Рабочие часы на дату
	hours, open := venue.HoursOn(req.Date)
	if !open {
		uc.logger.Info("GetAvailability: venue=%d is closed on %s", venue.ID, req.Date)
		return nil, ErrVenueClosed
	}

	// 7. Генерируем слоты от часов, выровненных по сетке занятости
	var intervals []domain.Interval
	if aligned, ok := hours.AlignTo(rules.GridMinutes); ok {
		if aligned != hours {
			uc.logger.Info("GetAvailability: venue=%d hours %s aligned to %s", venue.ID, hours, aligned)
		}
		intervals = generateIntervals(aligned, rules.SlotMinutes)
	}

	// 8. Подтвержденные брони корта на дату
	reservations, err := uc.ledger.ListForCourt(ctx, court.ID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list reservations for court=%d: %v", court.ID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrUnavailable, err)
	}

	// 9. Доступность и цена
	earliest := now.Add(time.Duration(rules.MinNoticeMinutes) * time.Minute)
	slots := buildSlots(intervals, reservations, court, req.Date, loc, earliest)

	uc.logger.Info("GetAvailability: generated %d slots for court=%d, date=%s", len(slots), court.ID, req.Date)

	return &Response{
		Court:       court,
		Venue:       venue,
		Date:        req.Date,
		SlotMinutes: rules.SlotMinutes,
		Slots:       slots,
	}, nil
}

func (uc *UseCase) courtWithVenue(ctx context.Context, courtID int64) (*domain.Court, *domain.Venue, error) {
	court, err := uc.catalogClient.GetCourt(ctx, courtID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrCourtNotFound) {
			uc.logger.Warn("GetAvailability: court id=%d not found", courtID)
			return nil, nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailability: failed to get court id=%d: %v", courtID, err)
		return nil, nil, fmt.Errorf("%w: failed to get court: %v", ErrUnavailable, err)
	}

	venue, err := uc.catalogClient.GetVenue(ctx, court.VenueID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d of court id=%d not found", court.VenueID, courtID)
			return nil, nil, ErrCourtNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", court.VenueID, err)
		return nil, nil, fmt.Errorf("%w: failed to get venue: %v", ErrUnavailable, err)
	}

	return court, venue, nil
}
