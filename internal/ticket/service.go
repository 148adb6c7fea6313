package ticket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/metinatakli/cinema-tickets/internal/domain"
	appvalidator "github.com/metinatakli/cinema-tickets/internal/validator"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/cinema-tickets/internal/ticket"

// Service validates and prices ticket purchases and hands the result to the seat
// reservation and payment collaborators. It keeps no state between calls and is safe
// for concurrent use.
type Service struct {
	payment   domain.TicketPaymentService
	seats     domain.SeatReservationService
	validator *validator.Validate
	logger    *slog.Logger

	tracer     trace.Tracer
	purchases  metric.Int64Counter
	rejections metric.Int64Counter
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithValidator(v *validator.Validate) Option {
	return func(s *Service) {
		s.validator = v
	}
}

func NewService(
	payment domain.TicketPaymentService,
	seats domain.SeatReservationService,
	opts ...Option) (*Service, error) {

	if isNil(payment) || isNil(seats) {
		return nil, errors.New("payment and seat reservation services cannot be nil")
	}

	s := &Service{
		payment:   payment,
		seats:     seats,
		validator: appvalidator.NewValidator(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:    otel.Tracer(instrumentationName),
	}

	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter(instrumentationName)

	var err error
	s.purchases, err = meter.Int64Counter("ticket.purchases",
		metric.WithDescription("Number of accepted ticket purchases"))
	if err != nil {
		return nil, err
	}

	s.rejections, err = meter.Int64Counter("ticket.rejections",
		metric.WithDescription("Number of rejected ticket purchases by reason"))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// PurchaseTickets validates the request, works out the amount due and the number of
// seats, then reserves the seats and takes the payment, in that order, so an account is
// never charged for seats it could not get.
//
// A *domain.RejectionError is returned when validation fails; neither collaborator is
// called in that case. Errors from the collaborators are returned unchanged.
func (s *Service) PurchaseTickets(
	ctx context.Context,
	accountID int64,
	requests ...domain.TicketTypeRequest) (*domain.Purchase, error) {

	ctx, span := s.tracer.Start(ctx, "ticket.PurchaseTickets",
		trace.WithAttributes(attribute.Int64("account.id", accountID)))
	defer span.End()

	totals, err := s.validate(accountID, requests)
	if err != nil {
		s.reject(ctx, span, accountID, err)
		return nil, err
	}

	purchase := &domain.Purchase{
		ID:             uuid.NewString(),
		AccountID:      accountID,
		Totals:         totals,
		AmountDue:      amountDue(totals),
		SeatsToReserve: seatsToReserve(totals),
	}

	span.SetAttributes(
		attribute.String("purchase.id", purchase.ID),
		attribute.Int("purchase.amount", purchase.AmountDue),
		attribute.Int("purchase.seats", purchase.SeatsToReserve),
	)

	err = s.seats.ReserveSeat(ctx, accountID, purchase.SeatsToReserve)
	if err != nil {
		s.fail(span, purchase, "seat reservation failed", err)
		return nil, err
	}

	err = s.payment.MakePayment(ctx, accountID, purchase.AmountDue)
	if err != nil {
		s.fail(span, purchase, "payment failed", err)
		return nil, err
	}

	s.purchases.Add(ctx, 1)
	s.logger.Info("tickets purchased",
		"purchase_id", purchase.ID,
		"account_id", accountID,
		"amount", purchase.AmountDue,
		"seats", purchase.SeatsToReserve,
		"adult", totals.Adult,
		"child", totals.Child,
		"infant", totals.Infant,
	)

	return purchase, nil
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}

	return false
}

func (s *Service) validate(accountID int64, requests []domain.TicketTypeRequest) (domain.TicketTotals, error) {
	if accountID <= 0 {
		return domain.TicketTotals{}, domain.NewRejection(
			domain.RejectionInvalidAccount,
			"account ID must be greater than zero",
		)
	}

	err := s.validator.Var(requests, "required,min=1,dive")
	if err != nil {
		return domain.TicketTotals{}, domain.NewRejection(
			domain.RejectionMalformedRequest,
			"invalid ticket type request: "+appvalidator.Describe(err),
		)
	}

	totals := calculateTotals(requests)

	err = validateTotals(totals)
	if err != nil {
		return domain.TicketTotals{}, err
	}

	return totals, nil
}

func (s *Service) reject(ctx context.Context, span trace.Span, accountID int64, err error) {
	reason := "unknown"

	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		reason = string(rejection.Kind)
	}

	span.SetStatus(codes.Error, reason)
	s.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))

	s.logger.Warn("ticket purchase rejected", "account_id", accountID, "reason", reason, "error", err)
}

func (s *Service) fail(span trace.Span, purchase *domain.Purchase, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	s.logger.Error(msg,
		"purchase_id", purchase.ID,
		"account_id", purchase.AccountID,
		"error", err,
	)
}
