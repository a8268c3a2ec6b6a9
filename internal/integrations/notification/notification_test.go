package notification

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/venuebook/pkg/logger"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

type countingSender struct {
	calls atomic.Int32
	err   error
}

func (s *countingSender) Send(ctx context.Context, n Notification) error {
	s.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("no deadline")
	}
	return s.err
}

func TestAMQPSender_RoutingKey(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishJSON", mock.Anything, "booking.booking_confirmed", mock.MatchedBy(func(v any) bool {
		msg, ok := v.(message)
		return ok && msg.UserID == 5 && msg.Payload.BookingRef == "ref"
	})).Return(nil)

	err := NewAMQPSender(pub).Send(context.Background(), Notification{
		UserID:  5,
		Kind:    KindBookingConfirmed,
		Payload: Payload{BookingRef: "ref"},
	})
	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestAMQPSender_Error(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishJSON", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed"))

	err := NewAMQPSender(pub).Send(context.Background(), Notification{Kind: KindBookingCancelled})
	assert.ErrorIs(t, err, ErrPublish)
}

func TestDispatcher_SurvivesCancelledRequestContext(t *testing.T) {
	sender := &countingSender{err: errors.New("broker down")}
	d := NewDispatcher(sender, time.Second, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Notify(ctx, Notification{Kind: KindBookingConfirmed})
	d.Notify(ctx, Notification{Kind: KindBookingCancelled})
	cancel()
	d.Wait()

	assert.Equal(t, int32(2), sender.calls.Load())
}
