package quote_booking

import (
	"context"

	"github.com/m04kA/venuebook/internal/usecase/book"
)

type QuoteUseCase interface {
	Quote(ctx context.Context, req *book.QuoteRequest) (*book.QuoteResponse, error)
}

type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
