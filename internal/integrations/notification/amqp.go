package notification

import (
	"context"
	"fmt"
)

// AMQPSender публикует уведомления в topic exchange
type AMQPSender struct {
	pub JSONPublisher
}

func NewAMQPSender(pub JSONPublisher) *AMQPSender {
	return &AMQPSender{pub: pub}
}

func (s *AMQPSender) Send(ctx context.Context, n Notification) error {
	msg := message{UserID: n.UserID, Kind: n.Kind, Payload: n.Payload}
	if err := s.pub.PublishJSON(ctx, n.RoutingKey(), msg); err != nil {
		return fmt.Errorf("%w: key=%s: %v", ErrPublish, n.RoutingKey(), err)
	}
	return nil
}

// LogSender только пишет уведомление в лог
type LogSender struct {
	log Logger
}

func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n Notification) error {
	s.log.Info("Notification %s user_id=%d booking_ref=%s slots=%v", n.Kind, n.UserID, n.Payload.BookingRef, n.Payload.Slots)
	return nil
}
