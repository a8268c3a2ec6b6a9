package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Offline авторизатор без обращения к провайдеру: оплата на месте
type Offline struct {
	log Logger
}

func NewOffline(log Logger) *Offline {
	return &Offline{log: log}
}

// Authorize выдает локальный токен оплаты
func (o *Offline) Authorize(ctx context.Context, req Request) (*Authorization, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("%w: negative amount %s", ErrPaymentFailed, req.Amount)
	}

	token := "offline_" + uuid.NewString()
	o.log.Info("Offline payment authorized user_id=%d amount=%s %s ref=%s", req.UserID, req.Amount, req.Currency, req.Reference)

	return &Authorization{Token: token, Status: "pending"}, nil
}
