package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/venuebook/internal/domain"
	reservationRepo "github.com/m04kA/venuebook/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/venuebook/internal/integrations/catalog"
	"github.com/m04kA/venuebook/internal/integrations/notification"
	"github.com/m04kA/venuebook/internal/service/ledger/models"
	"github.com/m04kA/venuebook/pkg/types"
)

// Service реестр броней: атомарный захват интервалов, отмена, история
// Единственный арбитр конфликтов - уникальный ключ занятости в хранилище:
// блокировок на уровне приложения нет, проигравший сразу получает ErrSlotConflict
type Service struct {
	reservationRepo ReservationRepository
	rules           RulesProvider
	catalogClient   CatalogClient
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр реестра броней
func NewService(
	reservationRepo ReservationRepository,
	rules RulesProvider,
	catalogClient CatalogClient,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		rules:           rules,
		catalogClient:   catalogClient,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// TryReserve захватывает все интервалы запроса или ни одного
func (s *Service) TryReserve(ctx context.Context, req *models.ReserveRequest) ([]*domain.Reservation, error) {
	s.logger.Info("TryReserve: user=%d court=%d date=%s intervals=%v ref=%s",
		req.UserID, req.CourtID, req.Date, req.Intervals(), req.BookingRef)

	// 1. Интервалы должны быть корректными и не пересекаться между собой
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: no intervals requested", ErrInvalidSlots)
	}
	for _, item := range req.Items {
		if !item.Interval.Start.IsBefore(item.Interval.End) {
			return nil, fmt.Errorf("%w: empty interval %s", ErrInvalidSlots, item.Interval)
		}
	}
	if domain.AnyOverlap(req.Intervals()) {
		return nil, fmt.Errorf("%w: requested intervals overlap", ErrInvalidSlots)
	}

	now := s.timeProvider.Now().UTC()
	reservations := req.ToDomainReservations(now)

	// 2. Все вставки в одной транзакции: конфликт любого интервала откатывает остальные
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, res := range reservations {
			if _, err := s.reservationRepo.Create(txCtx, res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrUnalignedInterval) {
			s.logger.Warn("TryReserve: unaligned intervals for court=%d date=%s: %v", req.CourtID, req.Date, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSlots, err)
		}
		if errors.Is(err, reservationRepo.ErrSlotTaken) {
			s.logger.Warn("TryReserve: conflict for court=%d date=%s: %v", req.CourtID, req.Date, err)
			return nil, fmt.Errorf("%w: %v", ErrSlotConflict, err)
		}
		s.logger.Error("TryReserve: repository error for court=%d date=%s: %v", req.CourtID, req.Date, err)
		return nil, fmt.Errorf("%w: TryReserve - repository error: %v", ErrUnavailable, err)
	}

	s.logger.Info("TryReserve: reserved %d intervals ref=%s", len(reservations), req.BookingRef)
	return reservations, nil
}

// Cancel отменяет бронь
// Отменить может автор брони, владелец площадки или администратор;
// окно отмены действует для всех
func (s *Service) Cancel(ctx context.Context, reservationID int64, actor domain.Actor) (*domain.Reservation, error) {
	s.logger.Info("Cancel: reservation id=%d by user=%d", reservationID, actor.UserID)

	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.cancel(ctx, []*domain.Reservation{res}, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%d cancelled by user=%d", reservationID, actor.UserID)
	return cancelled[0], nil
}

// CancelBooking отменяет все подтвержденные брони одного бронирования в одной транзакции
// Окно отмены считается от самого раннего интервала
func (s *Service) CancelBooking(ctx context.Context, bookingRef string, actor domain.Actor) ([]*domain.Reservation, error) {
	s.logger.Info("CancelBooking: ref=%s by user=%d", bookingRef, actor.UserID)

	list, err := s.listBooking(ctx, bookingRef)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.cancel(ctx, list, actor)
	if err != nil {
		return nil, err
	}

	s.logger.Info("CancelBooking: ref=%s cancelled %d reservations by user=%d", bookingRef, len(cancelled), actor.UserID)
	return cancelled, nil
}

func (s *Service) cancel(ctx context.Context, list []*domain.Reservation, actor domain.Actor) ([]*domain.Reservation, error) {
	first := list[0]

	// 1. Права доступа: все брони бронирования принадлежат одному пользователю и корту
	if err := s.checkAccess(ctx, first, actor); err != nil {
		s.logger.Warn("cancel: access denied for user=%d to ref=%s", actor.UserID, first.BookingRef)
		return nil, err
	}

	// 2. Статус
	active := make([]*domain.Reservation, 0, len(list))
	for _, res := range list {
		if res.Status == domain.StatusConfirmed {
			active = append(active, res)
		}
	}
	if len(active) == 0 {
		return nil, ErrAlreadyCancelled
	}

	// 3. Окно отмены по правилам корта
	rules, err := s.rules.Effective(ctx, first.VenueID, first.CourtID)
	if err != nil {
		s.logger.Error("cancel: failed to get rules for venue=%d court=%d: %v", first.VenueID, first.CourtID, err)
		return nil, fmt.Errorf("%w: Cancel - rules: %v", ErrUnavailable, err)
	}

	now := s.timeProvider.Now()
	for _, res := range active {
		deadline := res.CancelDeadline(rules.CancelCutoff())
		if now.After(deadline) {
			s.logger.Warn("cancel: reservation id=%d deadline %s passed", res.ID, deadline.Format(time.RFC3339))
			return nil, fmt.Errorf("%w: cancellation closes %s before start", ErrTooLateToCancel, rules.CancelCutoff())
		}
	}

	// 4. Условные обновления и освобождение интервалов в одной транзакции
	cancelledAt := now.UTC()
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, res := range active {
			if err := s.reservationRepo.Cancel(txCtx, res.ID, actor.UserID, cancelledAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrNotConfirmed) {
			// Параллельная отмена успела раньше
			return nil, ErrAlreadyCancelled
		}
		s.logger.Error("cancel: repository error for ref=%s: %v", first.BookingRef, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrUnavailable, err)
	}

	cancelledBy := actor.UserID
	var (
		ids   = make([]int64, 0, len(active))
		slots = make([]string, 0, len(active))
		total types.Money
	)
	for _, res := range active {
		res.Status = domain.StatusCancelled
		res.CancelledAt = &cancelledAt
		res.CancelledBy = &cancelledBy
		res.UpdatedAt = cancelledAt

		ids = append(ids, res.ID)
		slots = append(slots, res.Interval.String())
		total += res.Price
	}

	// 5. Уведомление не влияет на результат
	s.notifier.Notify(ctx, notification.Notification{
		UserID: first.UserID,
		Kind:   notification.KindBookingCancelled,
		Payload: notification.Payload{
			BookingRef:     first.BookingRef,
			ReservationIDs: ids,
			CourtID:        first.CourtID,
			VenueID:        first.VenueID,
			Date:           first.Date.String(),
			Slots:          slots,
			TotalPrice:     total.String(),
			Currency:       first.Currency,
			OccurredAt:     cancelledAt,
		},
	})

	return active, nil
}

// Get бронь по ID с проверкой прав
func (s *Service) Get(ctx context.Context, reservationID int64, actor domain.Actor) (*models.ReservationResponse, error) {
	res, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, res, actor); err != nil {
		s.logger.Warn("Get: access denied for user=%d to reservation id=%d", actor.UserID, reservationID)
		return nil, err
	}

	return models.FromDomainReservation(res, s.timeProvider.Now()), nil
}

// GetBooking все брони одного бронирования с проверкой прав
func (s *Service) GetBooking(ctx context.Context, bookingRef string, actor domain.Actor) (*models.BookingResponse, error) {
	list, err := s.listBooking(ctx, bookingRef)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, list[0], actor); err != nil {
		s.logger.Warn("GetBooking: access denied for user=%d to ref=%s", actor.UserID, bookingRef)
		return nil, err
	}

	return models.FromDomainBooking(list, s.timeProvider.Now()), nil
}

// ListForUser история броней пользователя, сначала самые поздние
// status может быть confirmed, cancelled или completed (вычисляемый)
func (s *Service) ListForUser(ctx context.Context, userID int64, status *string, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("ListForUser: user=%d status=%v by user=%d", userID, status, actor.UserID)

	if !actor.CanActFor(userID) {
		return nil, ErrForbidden
	}

	// completed хранится как confirmed, поэтому фильтруем после чтения
	var (
		stored *domain.ReservationStatus
		want   domain.ReservationStatus
	)
	if status != nil {
		parsed, ok := domain.ParseReservationStatus(*status)
		if !ok {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
		}
		want = parsed
		storedStatus := parsed
		if parsed == domain.StatusCompleted {
			storedStatus = domain.StatusConfirmed
		}
		stored = &storedStatus
	}

	list, err := s.reservationRepo.ListByUser(ctx, userID, stored)
	if err != nil {
		s.logger.Error("ListForUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - repository error: %v", ErrUnavailable, err)
	}

	now := s.timeProvider.Now()
	if want != "" {
		filtered := list[:0]
		for _, res := range list {
			if res.EffectiveStatus(now) == want {
				filtered = append(filtered, res)
			}
		}
		list = filtered
	}

	return models.FromDomainReservationList(list, now), nil
}

// ListForCourt подтвержденные брони корта на дату в порядке начала
func (s *Service) ListForCourt(ctx context.Context, courtID int64, date types.Date) ([]*domain.Reservation, error) {
	list, err := s.reservationRepo.ListByCourtAndDate(ctx, courtID, date, false)
	if err != nil {
		s.logger.Error("ListForCourt: repository error for court=%d date=%s: %v", courtID, date, err)
		return nil, fmt.Errorf("%w: ListForCourt - repository error: %v", ErrUnavailable, err)
	}
	return list, nil
}

// CourtSchedule все брони корта на дату, включая отмененные
// Доступно владельцу площадки и администратору
func (s *Service) CourtSchedule(ctx context.Context, courtID int64, date types.Date, actor domain.Actor) (*models.ReservationListResponse, error) {
	s.logger.Info("CourtSchedule: court=%d date=%s by user=%d", courtID, date, actor.UserID)

	if !actor.IsAdmin() {
		court, err := s.catalogClient.GetCourt(ctx, courtID)
		if err != nil {
			if errors.Is(err, catalogClient.ErrCourtNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("%w: CourtSchedule - catalog: %v", ErrUnavailable, err)
		}
		if err := s.checkVenueOwner(ctx, court.VenueID, actor); err != nil {
			return nil, err
		}
	}

	list, err := s.reservationRepo.ListByCourtAndDate(ctx, courtID, date, true)
	if err != nil {
		s.logger.Error("CourtSchedule: repository error for court=%d: %v", courtID, err)
		return nil, fmt.Errorf("%w: CourtSchedule - repository error: %v", ErrUnavailable, err)
	}

	return models.FromDomainReservationList(list, s.timeProvider.Now()), nil
}

func (s *Service) listBooking(ctx context.Context, bookingRef string) ([]*domain.Reservation, error) {
	list, err := s.reservationRepo.ListByBookingRef(ctx, bookingRef)
	if err != nil {
		s.logger.Error("listBooking: repository error for ref=%s: %v", bookingRef, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrUnavailable, err)
	}
	if len(list) == 0 {
		return nil, ErrNotFound
	}
	return list, nil
}

func (s *Service) getReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("getReservation: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrUnavailable, err)
	}
	return res, nil
}

// checkAccess автор брони, администратор или владелец площадки
func (s *Service) checkAccess(ctx context.Context, res *domain.Reservation, actor domain.Actor) error {
	if actor.CanActFor(res.UserID) {
		return nil
	}
	return s.checkVenueOwner(ctx, res.VenueID, actor)
}

func (s *Service) checkVenueOwner(ctx context.Context, venueID int64, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	venue, err := s.catalogClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrVenueNotFound) {
			return ErrForbidden
		}
		s.logger.Error("checkVenueOwner: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: failed to get venue: %v", ErrUnavailable, err)
	}

	if venue.OwnerID != actor.UserID {
		return ErrForbidden
	}
	return nil
}
