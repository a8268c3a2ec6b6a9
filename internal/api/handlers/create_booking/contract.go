package create_booking

import (
	"context"

	"github.com/m04kA/venuebook/internal/usecase/book"
)

type BookUseCase interface {
	Execute(ctx context.Context, req *book.Request) (*book.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
