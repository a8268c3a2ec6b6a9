package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/omise/omise-go"
	"github.com/omise/omise-go/operations"

	"github.com/m04kA/venuebook/internal/domain"
)

// Статусы charge в Omise
const (
	chargeSuccessful        = "successful"
	chargePending           = "pending"
	chargeFailed            = "failed"
	chargeAwaitingAuthorize = "awaiting_authorize"
)

// Charger создание charge в Omise
type Charger interface {
	CreateCharge(op *operations.CreateCharge) (*omise.Charge, error)
}

// omiseCharger адаптер *omise.Client к Charger
type omiseCharger struct {
	client *omise.Client
}

func (c omiseCharger) CreateCharge(op *operations.CreateCharge) (*omise.Charge, error) {
	charge := &omise.Charge{}
	if err := c.client.Do(charge, op); err != nil {
		return nil, err
	}
	return charge, nil
}

// Omise авторизатор через Omise charges
// Карта передается как card token, кошельки и paypal как source
type Omise struct {
	client Charger
	log    Logger
}

// NewOmiseFromKeys создает авторизатор с клиентом Omise API
func NewOmiseFromKeys(publicKey, secretKey string, log Logger) (*Omise, error) {
	client, err := omise.NewClient(publicKey, secretKey)
	if err != nil {
		return nil, err
	}
	return NewOmise(omiseCharger{client: client}, log), nil
}

func NewOmise(client Charger, log Logger) *Omise {
	return &Omise{client: client, log: log}
}

// Authorize создает charge на сумму бронирования
func (o *Omise) Authorize(ctx context.Context, req Request) (*Authorization, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrPaymentFailed, req.Amount)
	}
	if req.Token == "" {
		return nil, fmt.Errorf("%w: payment token is required for %s", ErrPaymentFailed, req.Method)
	}

	op := &operations.CreateCharge{
		Amount:   req.Amount.Int64(),
		Currency: strings.ToLower(req.Currency),
		Metadata: map[string]interface{}{
			"booking_ref": req.Reference,
			"user_id":     req.UserID,
		},
	}

	switch req.Method {
	case domain.PaymentCard:
		// Только авторизация, списание после оказания услуги
		op.Card = req.Token
		op.DontCapture = true
	case domain.PaymentWallet, domain.PaymentPayPal:
		op.Source = req.Token
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, req.Method)
	}

	charge, err := o.client.CreateCharge(op)
	if err != nil {
		var apiErr *omise.Error
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	status := string(charge.Status)
	switch status {
	case chargeSuccessful, chargePending, chargeAwaitingAuthorize:
		o.log.Info("Omise charge accepted id=%s status=%s ref=%s", charge.ID, status, req.Reference)
		return &Authorization{Token: charge.ID, Status: status}, nil
	case chargeFailed:
		var code, message string
		if charge.FailureCode != nil {
			code = *charge.FailureCode
		}
		if charge.FailureMessage != nil {
			message = *charge.FailureMessage
		}
		o.log.Warn("Omise charge failed id=%s code=%s ref=%s", charge.ID, code, req.Reference)
		return nil, fmt.Errorf("%w: %s %s", ErrPaymentFailed, code, message)
	default:
		return nil, fmt.Errorf("%w: unexpected charge status %q", ErrPaymentFailed, status)
	}
}
