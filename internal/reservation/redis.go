package reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/redis/go-redis/v9"
)

var reserveSeatsScript = redis.NewScript(`
    -- KEYS = [remaining capacity key, reserved seats per account hash]
    -- ARGV = [accountID, seats]

    local remaining = tonumber(redis.call("GET", KEYS[1]) or "0")
    local seats = tonumber(ARGV[2])

    if remaining < seats then
        return {err = "not enough seats"}
    end

    redis.call("DECRBY", KEYS[1], seats)
    redis.call("HINCRBY", KEYS[2], ARGV[1], seats)

    return remaining - seats
`)

// RedisSeatReservationService books seats for a single screening. The remaining
// capacity and each account's reserved seat count are kept in Redis and updated
// atomically by a Lua script.
type RedisSeatReservationService struct {
	client    redis.UniversalClient
	screening string
}

func NewRedisSeatReservationService(client redis.UniversalClient, screening string) *RedisSeatReservationService {
	return &RedisSeatReservationService{
		client:    client,
		screening: screening,
	}
}

// SetCapacity overwrites the number of seats still available for the screening.
func (r *RedisSeatReservationService) SetCapacity(ctx context.Context, seats int) error {
	if seats < 0 {
		return fmt.Errorf("seat capacity cannot be negative, got %d", seats)
	}

	return r.client.Set(ctx, capacityKey(r.screening), seats, 0).Err()
}

func (r *RedisSeatReservationService) ReserveSeat(ctx context.Context, accountID int64, seats int) error {
	if seats <= 0 {
		return fmt.Errorf("seat count must be greater than zero, got %d", seats)
	}

	keys := []string{capacityKey(r.screening), reservationsKey(r.screening)}

	err := reserveSeatsScript.Run(ctx, r.client, keys, strconv.FormatInt(accountID, 10), seats).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "not enough seats") {
			return domain.ErrSeatsUnavailable
		}

		return fmt.Errorf("seats couldn't be reserved for account %d: %w", accountID, err)
	}

	return nil
}

// ReservedSeats returns how many seats the account holds for the screening.
func (r *RedisSeatReservationService) ReservedSeats(ctx context.Context, accountID int64) (int, error) {
	seats, err := r.client.HGet(ctx, reservationsKey(r.screening), strconv.FormatInt(accountID, 10)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}

		return 0, err
	}

	return seats, nil
}

func capacityKey(screening string) string {
	return fmt.Sprintf("seat_capacity:%s", screening)
}

func reservationsKey(screening string) string {
	return fmt.Sprintf("seat_reservations:%s", screening)
}
