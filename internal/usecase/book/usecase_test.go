package book

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/internal/infra/storage/database"
	reservationRepo "github.com/m04kA/venuebook/internal/infra/storage/reservation"
	"github.com/m04kA/venuebook/internal/integrations/notification"
	"github.com/m04kA/venuebook/internal/integrations/payment"
	"github.com/m04kA/venuebook/internal/service/ledger"
	ledgerModels "github.com/m04kA/venuebook/internal/service/ledger/models"
	"github.com/m04kA/venuebook/internal/usecase/get_availability"
	"github.com/m04kA/venuebook/pkg/dbmetrics"
	"github.com/m04kA/venuebook/pkg/logger"
	"github.com/m04kA/venuebook/pkg/psqlbuilder"
	"github.com/m04kA/venuebook/pkg/txmanager"
	"github.com/m04kA/venuebook/pkg/types"
)

var testDate = types.MustParseDate("2026-10-20")

func interval(start, end string) domain.Interval {
	return domain.Interval{Start: types.MustParseClock(start), End: types.MustParseClock(end)}
}

type MockAvailability struct {
	mock.Mock
}

func (m *MockAvailability) Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*get_availability.Response), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) TryReserve(ctx context.Context, req *ledgerModels.ReserveRequest) ([]*domain.Reservation, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

type MockPayment struct {
	mock.Mock
}

func (m *MockPayment) Authorize(ctx context.Context, req payment.Request) (*payment.Authorization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Authorization), args.Error(1)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg notification.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *countingMetrics) IncBooking(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

// availability корт 09:00-13:00 по 40.00 в час, слот 11:00-12:00 занят
func availability() *get_availability.Response {
	return &get_availability.Response{
		Court: &domain.Court{ID: 7, VenueID: 3, PricePerHour: 4000, Currency: "THB"},
		Venue: &domain.Venue{ID: 3, OwnerID: 50, Timezone: "Asia/Bangkok"},
		Date:  testDate,
		Slots: []domain.Slot{
			{Interval: interval("09:00", "10:00"), Available: true, Price: 4000},
			{Interval: interval("10:00", "11:00"), Available: true, Price: 4000},
			{Interval: interval("11:00", "12:00"), Available: false, Price: 4000},
			{Interval: interval("12:00", "13:00"), Available: true, Price: 6000},
		},
		SlotMinutes: 60,
	}
}

type fixture struct {
	uc       *UseCase
	avail    *MockAvailability
	ledger   *MockLedger
	payments *MockPayment
	notifier *recordingNotifier
	metrics  *countingMetrics
}

func newFixture() *fixture {
	f := &fixture{
		avail:    new(MockAvailability),
		ledger:   new(MockLedger),
		payments: new(MockPayment),
		notifier: &recordingNotifier{},
		metrics:  &countingMetrics{},
	}
	f.uc = NewUseCase(f.avail, f.ledger, f.payments, f.notifier, f.metrics, logger.NewNop())
	return f
}

func bookRequest(slots ...domain.Interval) *Request {
	return &Request{
		Actor:         domain.Actor{UserID: 100, Role: "user"},
		UserID:        100,
		CourtID:       7,
		Date:          testDate,
		Slots:         slots,
		PaymentMethod: domain.PaymentCard,
		PaymentToken:  "tokn_test",
	}
}

func TestBook_Success_MergesContiguousSlots(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.avail.On("Execute", mock.Anything, &get_availability.Request{CourtID: 7, Date: testDate}).Return(availability(), nil)
	f.payments.On("Authorize", mock.Anything, mock.MatchedBy(func(req payment.Request) bool {
		return req.Amount == 14000 && req.Currency == "THB" && req.Token == "tokn_test" && req.Reference != ""
	})).Return(&payment.Authorization{Token: "chrg_1", Status: "successful"}, nil)

	var captured *ledgerModels.ReserveRequest
	f.ledger.On("TryReserve", mock.Anything, mock.AnythingOfType("*models.ReserveRequest")).
		Run(func(args mock.Arguments) { captured = args.Get(1).(*ledgerModels.ReserveRequest) }).
		Return([]*domain.Reservation{{ID: 1}, {ID: 2}}, nil)

	resp, err := f.uc.Execute(ctx, bookRequest(interval("12:00", "13:00"), interval("10:00", "11:00"), interval("09:00", "10:00")))
	require.NoError(t, err)

	assert.Equal(t, types.Money(14000), resp.TotalPrice)
	assert.Equal(t, "THB", resp.Currency)
	assert.Equal(t, []int64{1, 2}, resp.ReservationIDs)
	assert.Equal(t, []domain.Interval{interval("09:00", "10:00"), interval("10:00", "11:00"), interval("12:00", "13:00")}, resp.ReservedSlots)
	assert.NotEmpty(t, resp.BookingRef)

	require.NotNil(t, captured)
	assert.Equal(t, resp.BookingRef, captured.BookingRef)
	assert.Equal(t, "chrg_1", captured.PaymentToken)
	assert.Equal(t, "Asia/Bangkok", captured.Timezone)
	assert.Equal(t, int64(3), captured.VenueID)
	assert.Equal(t, []ledgerModels.ReserveItem{
		{Interval: interval("09:00", "11:00"), Price: 8000},
		{Interval: interval("12:00", "13:00"), Price: 6000},
	}, captured.Items)

	require.Len(t, f.notifier.sent, 1)
	sent := f.notifier.sent[0]
	assert.Equal(t, notification.KindBookingConfirmed, sent.Kind)
	assert.Equal(t, int64(100), sent.UserID)
	assert.Equal(t, resp.BookingRef, sent.Payload.BookingRef)
	assert.Equal(t, []string{"09:00-10:00", "10:00-11:00", "12:00-13:00"}, sent.Payload.Slots)

	assert.Equal(t, []string{outcomeConfirmed}, f.metrics.outcomes)
}

func TestBook_SlotConflict_NoRetry(t *testing.T) {
	f := newFixture()

	f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)
	f.payments.On("Authorize", mock.Anything, mock.Anything).Return(&payment.Authorization{Token: "chrg_1"}, nil)
	f.ledger.On("TryReserve", mock.Anything, mock.Anything).Return(nil, ledger.ErrSlotConflict).Once()

	_, err := f.uc.Execute(context.Background(), bookRequest(interval("09:00", "10:00")))
	require.ErrorIs(t, err, ErrSlotConflict)

	f.ledger.AssertNumberOfCalls(t, "TryReserve", 1)
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, []string{outcomeConflict}, f.metrics.outcomes)
}

func TestBook_PaymentFailed_LedgerNotTouched(t *testing.T) {
	f := newFixture()

	f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)
	f.payments.On("Authorize", mock.Anything, mock.Anything).Return(nil, payment.ErrPaymentFailed)

	_, err := f.uc.Execute(context.Background(), bookRequest(interval("09:00", "10:00")))
	require.ErrorIs(t, err, ErrPaymentFailed)

	f.ledger.AssertNotCalled(t, "TryReserve", mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.sent)
	assert.Equal(t, []string{outcomePaymentFailed}, f.metrics.outcomes)
}

func TestBook_ProviderUnavailable_IsPaymentFailed(t *testing.T) {
	f := newFixture()

	f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)
	f.payments.On("Authorize", mock.Anything, mock.Anything).Return(nil, payment.ErrProviderUnavailable)

	_, err := f.uc.Execute(context.Background(), bookRequest(interval("09:00", "10:00")))
	assert.ErrorIs(t, err, ErrPaymentFailed)
}

func TestBook_Errors(t *testing.T) {
	tests := []struct {
		name     string
		req      func() *Request
		availErr error
		wantErr  error
	}{
		{
			name:    "booked slot",
			req:     func() *Request { return bookRequest(interval("11:00", "12:00")) },
			wantErr: ErrInvalidSlots,
		},
		{
			name:    "slot not on the grid",
			req:     func() *Request { return bookRequest(interval("09:30", "10:30")) },
			wantErr: ErrInvalidSlots,
		},
		{
			name:    "duplicate slot",
			req:     func() *Request { return bookRequest(interval("09:00", "10:00"), interval("09:00", "10:00")) },
			wantErr: ErrInvalidSlots,
		},
		{
			name:    "no slots",
			req:     func() *Request { return bookRequest() },
			wantErr: ErrInvalidInput,
		},
		{
			name: "someone else's booking",
			req: func() *Request {
				req := bookRequest(interval("09:00", "10:00"))
				req.UserID = 101
				return req
			},
			wantErr: ErrForbidden,
		},
		{
			name: "unknown payment method",
			req: func() *Request {
				req := bookRequest(interval("09:00", "10:00"))
				req.PaymentMethod = "cash"
				return req
			},
			wantErr: ErrInvalidInput,
		},
		{
			name:     "court not found",
			req:      func() *Request { return bookRequest(interval("09:00", "10:00")) },
			availErr: get_availability.ErrCourtNotFound,
			wantErr:  ErrCourtNotFound,
		},
		{
			name:     "venue closed",
			req:      func() *Request { return bookRequest(interval("09:00", "10:00")) },
			availErr: get_availability.ErrVenueClosed,
			wantErr:  ErrVenueClosed,
		},
		{
			name:     "date out of range",
			req:      func() *Request { return bookRequest(interval("09:00", "10:00")) },
			availErr: get_availability.ErrInvalidInput,
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "catalog down",
			req:      func() *Request { return bookRequest(interval("09:00", "10:00")) },
			availErr: get_availability.ErrUnavailable,
			wantErr:  ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.availErr != nil {
				f.avail.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.availErr)
			} else {
				f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)
			}

			_, err := f.uc.Execute(context.Background(), tt.req())
			require.ErrorIs(t, err, tt.wantErr)

			f.payments.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
			f.ledger.AssertNotCalled(t, "TryReserve", mock.Anything, mock.Anything)
		})
	}
}

func TestBook_AdminBooksForUser(t *testing.T) {
	f := newFixture()

	f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)
	f.payments.On("Authorize", mock.Anything, mock.Anything).Return(&payment.Authorization{Token: "offline_1"}, nil)
	f.ledger.On("TryReserve", mock.Anything, mock.MatchedBy(func(req *ledgerModels.ReserveRequest) bool {
		return req.UserID == 101
	})).Return([]*domain.Reservation{{ID: 9}}, nil)

	req := bookRequest(interval("09:00", "10:00"))
	req.Actor = domain.Actor{UserID: 1, Role: "admin"}
	req.UserID = 101

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, resp.ReservationIDs)
}

func TestBook_LedgerUnavailable(t *testing.T) {
	f := newFixture()

	f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)
	f.payments.On("Authorize", mock.Anything, mock.Anything).Return(&payment.Authorization{Token: "chrg_1"}, nil)
	f.ledger.On("TryReserve", mock.Anything, mock.Anything).Return(nil, errors.Join(ledger.ErrUnavailable, errors.New("disk full")))

	_, err := f.uc.Execute(context.Background(), bookRequest(interval("09:00", "10:00")))
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, []string{outcomeError}, f.metrics.outcomes)
}

func TestQuote(t *testing.T) {
	f := newFixture()
	f.avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)

	resp, err := f.uc.Quote(context.Background(), &QuoteRequest{
		CourtID: 7,
		Date:    testDate,
		Slots:   []domain.Interval{interval("12:00", "13:00"), interval("09:00", "10:00")},
	})
	require.NoError(t, err)

	assert.Equal(t, types.Money(10000), resp.TotalPrice)
	assert.Equal(t, "THB", resp.Currency)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, interval("09:00", "10:00"), resp.Slots[0].Interval)

	f.payments.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
	f.ledger.AssertNotCalled(t, "TryReserve", mock.Anything, mock.Anything)
	assert.Empty(t, f.metrics.outcomes)
}

func TestSelectSlots_RunPriceIsSumOfSlots(t *testing.T) {
	sel, err := selectSlots(availability(), []domain.Interval{interval("10:00", "11:00"), interval("09:00", "10:00")})
	require.NoError(t, err)

	require.Len(t, sel.runs, 1)
	assert.Equal(t, interval("09:00", "11:00"), sel.runs[0].interval)
	assert.Equal(t, types.Money(8000), sel.runs[0].price)
}

// newLedgerFixture сценарий бронирования поверх настоящего реестра на SQLite
// Оба участника видят слот свободным: расчет доступности сделан до любой записи
func newLedgerFixture(t *testing.T) (*UseCase, *countingMetrics, *recordingNotifier) {
	t.Helper()
	db := dbmetrics.Wrap(database.OpenTestSQLite(t), nil)
	repo, err := reservationRepo.NewRepository(db, psqlbuilder.DialectSQLite, 5)
	require.NoError(t, err)

	log := logger.NewNop()
	// TryReserve не обращается к правилам и каталогу
	realLedger := ledger.NewService(repo, nil, nil, nil, txmanager.NewTransactionManager(db), log)

	avail := new(MockAvailability)
	avail.On("Execute", mock.Anything, mock.Anything).Return(availability(), nil)

	metrics := &countingMetrics{}
	notifier := &recordingNotifier{}
	uc := NewUseCase(avail, realLedger, payment.NewOffline(log), notifier, metrics, log)
	return uc, metrics, notifier
}

func TestBook_ConcurrentRequestsHaveSingleWinner(t *testing.T) {
	uc, metrics, notifier := newLedgerFixture(t)

	const contenders = 2
	var (
		wg   sync.WaitGroup
		errs = make([]error, contenders)
	)
	start := make(chan struct{})
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			req := bookRequest(interval("09:00", "10:00"), interval("10:00", "11:00"))
			req.UserID = int64(100 + i)
			req.Actor = domain.Actor{UserID: req.UserID, Role: "user"}
			_, errs[i] = uc.Execute(context.Background(), req)
		}(i)
	}
	close(start)
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)
	assert.ElementsMatch(t, []string{outcomeConfirmed, outcomeConflict}, metrics.outcomes)
	assert.Len(t, notifier.sent, 1, "only the winner is notified")
}

func TestBook_AdjacentBookingsThroughLedger(t *testing.T) {
	uc, _, _ := newLedgerFixture(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, bookRequest(interval("09:00", "10:00")))
	require.NoError(t, err)

	other := bookRequest(interval("10:00", "11:00"))
	other.UserID = 101
	other.Actor = domain.Actor{UserID: 101, Role: "user"}
	_, err = uc.Execute(ctx, other)
	assert.NoError(t, err)
}
