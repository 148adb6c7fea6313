package domain

import "context"

// TicketPaymentService charges an account for a purchase. Amount is in whole currency units.
type TicketPaymentService interface {
	MakePayment(ctx context.Context, accountID int64, amount int) error
}
