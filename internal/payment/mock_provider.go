package payment

import (
	"context"
	"log/slog"
	"sync"
)

type Charge struct {
	AccountID int64
	Amount    int
}

// MockPaymentService records charges instead of sending them to a gateway.
type MockPaymentService struct {
	logger *slog.Logger

	mu      sync.Mutex
	charges []Charge
}

func NewMockPaymentService(logger *slog.Logger) *MockPaymentService {
	return &MockPaymentService{
		logger: logger,
	}
}

func (m *MockPaymentService) MakePayment(ctx context.Context, accountID int64, amount int) error {
	m.mu.Lock()
	m.charges = append(m.charges, Charge{AccountID: accountID, Amount: amount})
	m.mu.Unlock()

	m.logger.Info("payment taken", "account_id", accountID, "amount", amount)

	return nil
}

func (m *MockPaymentService) Charges() []Charge {
	m.mu.Lock()
	defer m.mu.Unlock()

	charges := make([]Charge, len(m.charges))
	copy(charges, m.charges)

	return charges
}
