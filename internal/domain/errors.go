package domain

import "errors"

var (
	ErrInvalidTicketType = errors.New("ticket type must be ADULT, CHILD or INFANT")
	ErrSeatsUnavailable  = errors.New("not enough seats left to complete the reservation")
)

type RejectionKind string

const (
	RejectionInvalidAccount      RejectionKind = "invalid_account"
	RejectionMalformedRequest    RejectionKind = "malformed_request"
	RejectionEmptyPurchase       RejectionKind = "empty_purchase"
	RejectionTicketLimitExceeded RejectionKind = "ticket_limit_exceeded"
	RejectionMissingAdult        RejectionKind = "missing_adult"
	RejectionTooManyInfants      RejectionKind = "too_many_infants"
)

// RejectionError is returned when a purchase request fails validation. No collaborator
// has been called when it is returned.
type RejectionError struct {
	Kind    RejectionKind
	Message string
}

func NewRejection(kind RejectionKind, message string) *RejectionError {
	return &RejectionError{Kind: kind, Message: message}
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}

	return e.Message
}

// Is matches any RejectionError of the same kind, so the sentinels below can be used
// with errors.Is regardless of the message.
func (e *RejectionError) Is(target error) bool {
	var t *RejectionError
	if !errors.As(target, &t) {
		return false
	}

	return e.Kind == t.Kind
}

var (
	ErrInvalidAccount      = &RejectionError{Kind: RejectionInvalidAccount}
	ErrMalformedRequest    = &RejectionError{Kind: RejectionMalformedRequest}
	ErrEmptyPurchase       = &RejectionError{Kind: RejectionEmptyPurchase}
	ErrTicketLimitExceeded = &RejectionError{Kind: RejectionTicketLimitExceeded}
	ErrMissingAdult        = &RejectionError{Kind: RejectionMissingAdult}
	ErrTooManyInfants      = &RejectionError{Kind: RejectionTooManyInfants}
)

func IsRejection(err error) bool {
	var rejection *RejectionError
	return errors.As(err, &rejection)
}
