package middleware

import (
	"time"

	"github.com/m04kA/venuebook/pkg/auth"
)

// TokenParser проверка access-токена
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// HTTPObserver сбор метрик HTTP запросов
type HTTPObserver interface {
	ObserveHTTP(method, path string, status int, duration time.Duration)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
