package reservation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/metinatakli/cinema-tickets/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RedisSeatReservationTestSuite struct {
	suite.Suite
	redisClient *mocks.MockRedisClient
	service     *RedisSeatReservationService
}

func (s *RedisSeatReservationTestSuite) SetupTest() {
	s.redisClient = new(mocks.MockRedisClient)
	s.service = NewRedisSeatReservationService(s.redisClient, "screen-1")
}

func TestRedisSeatReservationSuite(t *testing.T) {
	suite.Run(t, new(RedisSeatReservationTestSuite))
}

func (s *RedisSeatReservationTestSuite) TestReserveSeat() {
	keys := []string{capacityKey("screen-1"), reservationsKey("screen-1")}

	tests := []struct {
		name       string
		seats      int
		setupMocks func()
		wantErr    error
		wantAnyErr bool
	}{
		{
			name:       "should fail without calling redis when no seats are requested",
			seats:      0,
			wantAnyErr: true,
		},
		{
			name:  "should return sold out when the script reports too few seats",
			seats: 3,
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, keys, "42", 3).
					Return(redis.NewCmdResult(nil, mocks.MockRedisError{Msg: "not enough seats"})).Once()
			},
			wantErr: domain.ErrSeatsUnavailable,
		},
		{
			name:  "should wrap other redis failures",
			seats: 3,
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, keys, "42", 3).
					Return(redis.NewCmdResult(nil, fmt.Errorf("connection reset"))).Once()
			},
			wantAnyErr: true,
		},
		{
			name:  "should reserve seats",
			seats: 3,
			setupMocks: func() {
				s.redisClient.On("EvalSha", mock.Anything, mock.Anything, keys, "42", 3).
					Return(redis.NewCmdResult(int64(97), nil)).Once()
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			defer s.redisClient.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			err := s.service.ReserveSeat(context.Background(), 42, tt.seats)

			switch {
			case tt.wantErr != nil:
				s.ErrorIs(err, tt.wantErr)
			case tt.wantAnyErr:
				s.Error(err)
				s.NotErrorIs(err, domain.ErrSeatsUnavailable)
			default:
				s.NoError(err)
			}
		})
	}
}

func (s *RedisSeatReservationTestSuite) TestReservedSeats() {
	s.Run("should return zero when the account has no reservation", func() {
		s.SetupTest()
		s.redisClient.On("HGet", mock.Anything, reservationsKey("screen-1"), "42").
			Return(redis.NewStringResult("", redis.Nil)).Once()

		seats, err := s.service.ReservedSeats(context.Background(), 42)

		s.Require().NoError(err)
		s.Equal(0, seats)
	})

	s.Run("should return the reserved seat count", func() {
		s.SetupTest()
		s.redisClient.On("HGet", mock.Anything, reservationsKey("screen-1"), "42").
			Return(redis.NewStringResult("5", nil)).Once()

		seats, err := s.service.ReservedSeats(context.Background(), 42)

		s.Require().NoError(err)
		s.Equal(5, seats)
	})
}

func (s *RedisSeatReservationTestSuite) TestSetCapacity() {
	s.redisClient.On("Set", mock.Anything, capacityKey("screen-1"), 100, mock.Anything).
		Return(redis.NewStatusResult("OK", nil)).Once()

	s.Require().NoError(s.service.SetCapacity(context.Background(), 100))
	s.Error(s.service.SetCapacity(context.Background(), -1))
	s.redisClient.AssertExpectations(s.T())
}

func TestMockSeatReservationService(t *testing.T) {
	m := NewMockSeatReservationService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	if err := m.ReserveSeat(ctx, 1, 2); err != nil {
		t.Fatal(err)
	}
	if err := m.ReserveSeat(ctx, 1, 3); err != nil {
		t.Fatal(err)
	}

	seats, _ := m.ReservedSeats(ctx, 1)
	if seats != 5 {
		t.Errorf("ReservedSeats = %d, want 5", seats)
	}
}
