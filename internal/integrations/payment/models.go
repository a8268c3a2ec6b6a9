package payment

import (
	"github.com/m04kA/venuebook/internal/domain"
	"github.com/m04kA/venuebook/pkg/types"
)

// Request запрос на авторизацию платежа
type Request struct {
	UserID    int64
	Amount    types.Money
	Currency  string
	Method    domain.PaymentMethod
	Token     string // токен карты или ID источника, выданный провайдером клиенту
	Reference string // bookingRef
}

// Authorization результат успешной авторизации
type Authorization struct {
	Token  string
	Status string
}
