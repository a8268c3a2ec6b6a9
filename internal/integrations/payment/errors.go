package payment

import "errors"

var (
	// ErrPaymentFailed платеж отклонен провайдером или не может быть проведен
	ErrPaymentFailed = errors.New("payment: authorization failed")

	// ErrProviderUnavailable провайдер не ответил
	ErrProviderUnavailable = errors.New("payment: provider unavailable")

	// ErrUnsupportedMethod способ оплаты не поддерживается провайдером
	ErrUnsupportedMethod = errors.New("payment: unsupported method")
)
