package domain

import "context"

type SeatReservationService interface {
	ReserveSeat(ctx context.Context, accountID int64, seats int) error
}
