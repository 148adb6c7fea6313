package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// StripePaymentService charges accounts by creating and confirming a Stripe
// PaymentIntent against a stored payment method.
type StripePaymentService struct {
	currency      stripe.Currency
	paymentMethod string
}

func NewStripePaymentService(currency, paymentMethod string) *StripePaymentService {
	return &StripePaymentService{
		currency:      stripe.Currency(currency),
		paymentMethod: paymentMethod,
	}
}

func (s *StripePaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("payment amount must be greater than zero, got %d", amount)
	}

	params := s.paymentIntentParams(accountID, amount)
	params.Context = ctx

	_, err := paymentintent.New(params)
	if err != nil {
		return fmt.Errorf("payment for account %d couldn't be completed: %w", accountID, err)
	}

	return nil
}

func (s *StripePaymentService) paymentIntentParams(accountID int64, amount int) *stripe.PaymentIntentParams {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(toMinorUnits(amount)),
		Currency:           stripe.String(string(s.currency)),
		PaymentMethod:      stripe.String(s.paymentMethod),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
		Description:        stripe.String(fmt.Sprintf("🎬 Cinema tickets for account %d", accountID)),
	}

	params.AddMetadata("account_id", strconv.FormatInt(accountID, 10))

	// One key per call; a repeated purchase is charged again.
	params.SetIdempotencyKey(uuid.NewString())

	return params
}

func toMinorUnits(amount int) int64 {
	return decimal.NewFromInt(int64(amount)).Mul(decimal.NewFromInt(100)).IntPart()
}
