package domain

import (
	"fmt"
	"strings"
)

// MaxTicketsPerPurchase is the largest number of tickets a single purchase may contain.
const MaxTicketsPerPurchase = 25

type TicketType int

const (
	TicketTypeAdult TicketType = iota + 1
	TicketTypeChild
	TicketTypeInfant
)

var ticketTypeNames = map[TicketType]string{
	TicketTypeAdult:  "ADULT",
	TicketTypeChild:  "CHILD",
	TicketTypeInfant: "INFANT",
}

func (t TicketType) String() string {
	if name, ok := ticketTypeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TicketType(%d)", int(t))
}

// Valid reports whether t is one of the known ticket categories. The zero value is not.
func (t TicketType) Valid() bool {
	_, ok := ticketTypeNames[t]
	return ok
}

// ParseTicketType maps a category name such as "adult" or "INFANT" to its TicketType.
func ParseTicketType(s string) (TicketType, error) {
	name := strings.ToUpper(strings.TrimSpace(s))

	for t, v := range ticketTypeNames {
		if v == name {
			return t, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTicketType, s)
}

// TicketTypeRequest is one purchase line: a ticket category and how many of it.
type TicketTypeRequest struct {
	Type  TicketType `validate:"ticket_type"`
	Count int        `validate:"gt=0"`
}

func NewTicketTypeRequest(t TicketType, count int) (TicketTypeRequest, error) {
	if !t.Valid() {
		return TicketTypeRequest{}, fmt.Errorf("%w: %s", ErrInvalidTicketType, t)
	}

	if count <= 0 {
		return TicketTypeRequest{}, fmt.Errorf("ticket count must be a positive integer, got %d for %s", count, t)
	}

	return TicketTypeRequest{Type: t, Count: count}, nil
}

// TicketTotals holds the per-category counts of a single purchase call.
type TicketTotals struct {
	Adult  int
	Child  int
	Infant int
	Total  int
}

type Purchase struct {
	ID             string
	AccountID      int64
	Totals         TicketTotals
	AmountDue      int
	SeatsToReserve int
}
