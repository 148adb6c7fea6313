package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/metinatakli/cinema-tickets/internal/domain"
)

// ParseTicketRequests turns command line arguments of the form TYPE=COUNT (for example
// ADULT=2) into purchase lines, keeping their order. Counts are passed through as given;
// rejecting zero or negative counts is left to the ticket service.
func ParseTicketRequests(args []string) ([]domain.TicketTypeRequest, error) {
	requests := make([]domain.TicketTypeRequest, 0, len(args))

	for _, arg := range args {
		name, countStr, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("ticket argument %q must have the form TYPE=COUNT", arg)
		}

		ticketType, err := domain.ParseTicketType(name)
		if err != nil {
			return nil, err
		}

		count, err := strconv.Atoi(strings.TrimSpace(countStr))
		if err != nil {
			return nil, fmt.Errorf("ticket count in %q must be an integer", arg)
		}

		requests = append(requests, domain.TicketTypeRequest{Type: ticketType, Count: count})
	}

	return requests, nil
}
