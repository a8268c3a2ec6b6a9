package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/integrations/notification"
	"github.com/m04kA/venuebook/internal/integrations/payment"
	"github.com/m04kA/venuebook/internal/service/ledger"
	ledgerModels "github.com/m04kA/venuebook/internal/service/ledger/models"
	"github.com/m04kA/venuebook/internal/usecase/get_availability"
	"github.com/m04kA/venuebook/pkg/obs"
	"github.com/m04kA/venuebook/pkg/types"
)

// UseCase сценарий бронирования: проверка слотов, оплата, атомарная запись, уведомление
type UseCase struct {
	availability AvailabilityEngine
	ledger       Ledger
	payments     PaymentAuthorizer
	notifier     Notifier
	metrics      Metrics
	tracer       trace.Tracer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availability AvailabilityEngine,
	ledger Ledger,
	payments PaymentAuthorizer,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		availability: availability,
		ledger:       ledger,
		payments:     payments,
		notifier:     notifier,
		metrics:      metrics,
		tracer:       obs.Tracer("venuebook/usecase/book"),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование
// SlotConflict возвращается сразу: клиент должен заново запросить доступность
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	ctx, span := uc.tracer.Start(ctx, "Book", trace.WithAttributes(
		attribute.Int64("court.id", req.CourtID),
		attribute.Int64("user.id", req.UserID),
		attribute.String("booking.date", req.Date.String()),
		attribute.Int("booking.slots", len(req.Slots)),
	))
	defer func() {
		uc.metrics.IncBooking(outcomeOf(err))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	uc.logger.Info("Book: user=%d, court=%d, date=%s, slots=%v, method=%s",
		req.UserID, req.CourtID, req.Date, req.Slots, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := uc.validate(req); err != nil {
		uc.logger.Warn("Book: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущая доступность корта
	availability, err := uc.computeAvailability(ctx, req.CourtID, req.Date)
	if err != nil {
		return nil, err
	}

	// 3. Выбор должен быть подмножеством свободных слотов
	sel, err := selectSlots(availability, req.Slots)
	if err != nil {
		uc.logger.Warn("Book: slot selection rejected for court=%d: %v", req.CourtID, err)
		return nil, err
	}

	bookingRef := uuid.NewString()
	span.SetAttributes(attribute.String("booking.ref", bookingRef))

	// 4. Авторизация оплаты до записи в реестр
	auth, err := uc.payments.Authorize(ctx, payment.Request{
		UserID:    req.UserID,
		Amount:    sel.total,
		Currency:  sel.currency,
		Method:    req.PaymentMethod,
		Token:     req.PaymentToken,
		Reference: bookingRef,
	})
	if err != nil {
		uc.logger.Warn("Book: payment failed for user=%d ref=%s: %v", req.UserID, bookingRef, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	// 5. Атомарная запись всех отрезков
	reservations, err := uc.ledger.TryReserve(ctx, &ledgerModels.ReserveRequest{
		BookingRef:    bookingRef,
		UserID:        req.UserID,
		CourtID:       availability.Court.ID,
		VenueID:       availability.Venue.ID,
		Date:          req.Date,
		Timezone:      availability.Venue.Timezone,
		Currency:      sel.currency,
		PaymentMethod: req.PaymentMethod,
		PaymentToken:  auth.Token,
		Items:         sel.reserveItems(),
	})
	if err != nil {
		// Авторизованный платеж без брони провайдер отменит по истечении срока авторизации
		uc.logger.Warn("Book: reservation failed ref=%s payment_token=%s: %v", bookingRef, auth.Token, err)
		switch {
		case errors.Is(err, ledger.ErrSlotConflict):
			return nil, fmt.Errorf("%w: %v", ErrSlotConflict, err)
		case errors.Is(err, ledger.ErrInvalidSlots):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSlots, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	resp = &Response{
		BookingRef:    bookingRef,
		TotalPrice:    sel.total,
		Currency:      sel.currency,
		ReservedSlots: sel.intervals(),
	}
	for _, res := range reservations {
		resp.ReservationIDs = append(resp.ReservationIDs, res.ID)
	}

	// 6. Уведомление в фоне, его ошибки не отменяют бронь
	uc.notifier.Notify(ctx, notification.Notification{
		UserID: req.UserID,
		Kind:   notification.KindBookingConfirmed,
		Payload: notification.Payload{
			BookingRef:     bookingRef,
			ReservationIDs: resp.ReservationIDs,
			CourtID:        availability.Court.ID,
			VenueID:        availability.Venue.ID,
			Date:           req.Date.String(),
			Slots:          sel.labels(),
			TotalPrice:     sel.total.String(),
			Currency:       sel.currency,
			OccurredAt:     uc.timeProvider.Now().UTC(),
		},
	})

	uc.logger.Info("Book: confirmed ref=%s reservations=%v total=%s %s",
		bookingRef, resp.ReservationIDs, sel.total, sel.currency)
	return resp, nil
}

// Quote расчет стоимости выбора без побочных эффектов
func (uc *UseCase) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "Quote", trace.WithAttributes(attribute.Int64("court.id", req.CourtID)))
	defer span.End()

	if req.CourtID <= 0 {
		return nil, fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if err := validateSlots(req.Slots); err != nil {
		return nil, err
	}

	availability, err := uc.computeAvailability(ctx, req.CourtID, req.Date)
	if err != nil {
		return nil, err
	}

	sel, err := selectSlots(availability, req.Slots)
	if err != nil {
		return nil, err
	}

	return &QuoteResponse{TotalPrice: sel.total, Currency: sel.currency, Slots: sel.slots}, nil
}

func (uc *UseCase) validate(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}
	if !req.Actor.CanActFor(req.UserID) {
		return ErrForbidden
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	switch req.PaymentMethod {
	case domain.PaymentCard, domain.PaymentWallet, domain.PaymentPayPal:
	default:
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	return validateSlots(req.Slots)
}

func (uc *UseCase) computeAvailability(ctx context.Context, courtID int64, date types.Date) (*get_availability.Response, error) {
	availability, err := uc.availability.Execute(ctx, &get_availability.Request{CourtID: courtID, Date: date})
	if err == nil {
		return availability, nil
	}

	switch {
	case errors.Is(err, get_availability.ErrInvalidInput):
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, get_availability.ErrCourtNotFound):
		return nil, ErrCourtNotFound
	case errors.Is(err, get_availability.ErrVenueClosed):
		return nil, ErrVenueClosed
	default:
		uc.logger.Error("Book: availability failed for court=%d date=%s: %v", courtID, date, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeConfirmed
	case errors.Is(err, ErrSlotConflict):
		return outcomeConflict
	case errors.Is(err, ErrPaymentFailed):
		return outcomePaymentFailed
	case errors.Is(err, ErrUnavailable):
		return outcomeError
	default:
		return outcomeInvalid
	}
}

// reserveItems отрезки для записи в реестр
func (s *selection) reserveItems() []ledgerModels.ReserveItem {
	items := make([]ledgerModels.ReserveItem, 0, len(s.runs))
	for _, r := range s.runs {
		items = append(items, ledgerModels.ReserveItem{Interval: r.interval, Price: r.price})
	}
	return items
}
