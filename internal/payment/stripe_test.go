package payment

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2500), toMinorUnits(25))
	assert.Equal(t, int64(9500), toMinorUnits(95))
	assert.Equal(t, int64(40000), toMinorUnits(400))
}

func TestPaymentIntentParams(t *testing.T) {
	s := NewStripePaymentService(string(stripe.CurrencyGBP), "pm_card_visa")

	params := s.paymentIntentParams(10, 95)

	assert.Equal(t, int64(9500), *params.Amount)
	assert.Equal(t, "gbp", *params.Currency)
	assert.Equal(t, "pm_card_visa", *params.PaymentMethod)
	assert.True(t, *params.Confirm)
	assert.Equal(t, "10", params.Metadata["account_id"])

	require.NotNil(t, params.IdempotencyKey)
	assert.NotEmpty(t, *params.IdempotencyKey)

	other := s.paymentIntentParams(10, 95)
	assert.NotEqual(t, *params.IdempotencyKey, *other.IdempotencyKey)
}

func TestMakePaymentRejectsNonPositiveAmounts(t *testing.T) {
	s := NewStripePaymentService(string(stripe.CurrencyGBP), "pm_card_visa")

	assert.Error(t, s.MakePayment(context.Background(), 1, 0))
	assert.Error(t, s.MakePayment(context.Background(), 1, -25))
}

func TestMockPaymentServiceRecordsCharges(t *testing.T) {
	m := NewMockPaymentService(slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, m.MakePayment(context.Background(), 1, 25))
	require.NoError(t, m.MakePayment(context.Background(), 10, 95))

	want := []Charge{{AccountID: 1, Amount: 25}, {AccountID: 10, Amount: 95}}
	if diff := cmp.Diff(want, m.Charges()); diff != "" {
		t.Errorf("charges mismatch (-want +got):\n%s", diff)
	}
}
