package reservation

import (
	"context"
	"log/slog"
	"sync"
)

// MockSeatReservationService accepts every reservation and keeps the per-account
// totals in memory. It stands in for the seat booking service when no Redis is
// configured.
type MockSeatReservationService struct {
	logger *slog.Logger

	mu       sync.Mutex
	reserved map[int64]int
}

func NewMockSeatReservationService(logger *slog.Logger) *MockSeatReservationService {
	return &MockSeatReservationService{
		logger:   logger,
		reserved: make(map[int64]int),
	}
}

func (m *MockSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, seats int) error {
	m.mu.Lock()
	m.reserved[accountID] += seats
	m.mu.Unlock()

	m.logger.Info("seats reserved", "account_id", accountID, "seats", seats)

	return nil
}

func (m *MockSeatReservationService) ReservedSeats(ctx context.Context, accountID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.reserved[accountID], nil
}
