package notification

import "errors"

// ErrPublish уведомление не удалось передать в брокер
var ErrPublish = errors.New("notification: publish failed")
