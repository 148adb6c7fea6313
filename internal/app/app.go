package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/metinatakli/cinema-tickets/internal/payment"
	"github.com/metinatakli/cinema-tickets/internal/reservation"
	"github.com/metinatakli/cinema-tickets/internal/ticket"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
	"github.com/metinatakli/cinema-tickets/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v82"
)

var (
	version = vcs.Version()
)

type Application struct {
	config Config
	logger *slog.Logger
	redis  redis.UniversalClient

	paymentService domain.TicketPaymentService
	seatService    domain.SeatReservationService
}

type Config struct {
	Env              string
	AccountID        int64
	OtelCollectorUrl string
	Redis            RedisConfig
	Stripe           StripeConfig
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	Screening    string
	SeatCapacity int
}

type StripeConfig struct {
	SecretKey     string
	PaymentMethod string
	Currency      string
}

func NewApp(
	cfg Config,
	logger *slog.Logger,
	redisClient redis.UniversalClient,
	paymentService domain.TicketPaymentService,
	seatService domain.SeatReservationService) *Application {

	return &Application{
		config:         cfg,
		logger:         logger,
		redis:          redisClient,
		paymentService: paymentService,
		seatService:    seatService,
	}
}

// Run parses the command line, wires the collaborators and performs a single purchase:
//
//	tickets -account 10 ADULT=2 CHILD=3 INFANT=1
func Run() error {
	var cfg Config

	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")
	flag.Int64Var(&cfg.AccountID, "account", 0, "Account ID making the purchase")
	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector gRPC endpoint")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL, the in-memory seat booking is used when empty")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")
	flag.StringVar(&cfg.Redis.Screening, "screening", "default", "Screening the seats are booked for")
	flag.IntVar(&cfg.Redis.SeatCapacity, "seat-capacity", 0, "Reset the screening's available seats before purchasing (0 keeps the current value)")

	flag.StringVar(&cfg.Stripe.SecretKey, "stripe-key", "", "Stripe secret key, payments are only logged when empty")
	flag.StringVar(&cfg.Stripe.PaymentMethod, "stripe-payment-method", "pm_card_visa", "Stripe payment method charged for purchases")
	flag.StringVar(&cfg.Stripe.Currency, "currency", string(stripe.CurrencyGBP), "Currency of ticket prices")

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	requests, err := ParseTicketRequests(flag.Args())
	if err != nil {
		logger.Error("invalid ticket arguments", "error", err)
		return err
	}

	app := &Application{
		config: cfg,
		logger: logger,
	}

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		return err
	}
	defer shutdownTelemetry(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = app.setupCollaborators(ctx)
	if err != nil {
		app.logger.Error("failed to set up collaborators", "error", err)
		return err
	}
	if app.redis != nil {
		defer app.redis.Close()
	}

	_, err = app.Purchase(ctx, requests)
	return err
}

func (app *Application) setupCollaborators(ctx context.Context) error {
	if app.config.Stripe.SecretKey != "" {
		stripe.Key = app.config.Stripe.SecretKey
		app.paymentService = payment.NewStripePaymentService(app.config.Stripe.Currency, app.config.Stripe.PaymentMethod)
	} else {
		app.logger.Info("stripe key not set, payments will only be recorded locally")
		app.paymentService = payment.NewMockPaymentService(app.logger)
	}

	if app.config.Redis.URL == "" {
		app.logger.Info("redis URL not set, seats will be reserved in memory")
		app.seatService = reservation.NewMockSeatReservationService(app.logger)
		return nil
	}

	redisClient, err := NewRedisClient(app.config)
	if err != nil {
		return err
	}

	seatService := reservation.NewRedisSeatReservationService(redisClient, app.config.Redis.Screening)

	if app.config.Redis.SeatCapacity > 0 {
		err = seatService.SetCapacity(ctx, app.config.Redis.SeatCapacity)
		if err != nil {
			redisClient.Close()
			return fmt.Errorf("seat capacity couldn't be set: %w", err)
		}
	}

	app.redis = redisClient
	app.seatService = seatService

	return nil
}

// Purchase runs one ticket purchase for the configured account and logs the outcome.
func (app *Application) Purchase(ctx context.Context, requests []domain.TicketTypeRequest) (*domain.Purchase, error) {
	tickets, err := ticket.NewService(
		app.paymentService,
		app.seatService,
		ticket.WithLogger(app.logger),
		ticket.WithValidator(appvalidator.NewValidator()),
	)
	if err != nil {
		return nil, err
	}

	purchase, err := tickets.PurchaseTickets(ctx, app.config.AccountID, requests...)
	if err != nil {
		var rejection *domain.RejectionError

		switch {
		case errors.As(err, &rejection):
			app.logger.Warn("purchase rejected", "reason", rejection.Kind, "message", rejection.Message)
		case errors.Is(err, domain.ErrSeatsUnavailable):
			app.logger.Warn("purchase failed: the screening is sold out")
		default:
			app.logger.Error("purchase failed", "error", err)
		}

		return nil, err
	}

	app.logger.Info("purchase completed",
		"purchase_id", purchase.ID,
		"amount_due", purchase.AmountDue,
		"currency", app.config.Stripe.Currency,
		"seats", purchase.SeatsToReserve,
		"env", app.config.Env,
		"version", version,
	)

	return purchase, nil
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(
		redisotel.InstrumentTracing(rdb),
		redisotel.InstrumentMetrics(rdb),
	)
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}
