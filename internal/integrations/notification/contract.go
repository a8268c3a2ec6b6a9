package notification

import "context"

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// JSONPublisher публикация сообщения в брокер, реализуется *mq.Publisher
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Sender доставка одного уведомления
type Sender interface {
	Send(ctx context.Context, n Notification) error
}
