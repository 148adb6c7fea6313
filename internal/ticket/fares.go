package ticket

import "github.com/metinatakli/cinema-tickets/internal/domain"

type fare struct {
	price        int
	occupiesSeat bool
}

// Prices are in whole currency units. Infants sit on an adult's lap, so they are free
// and take no seat.
var fares = map[domain.TicketType]fare{
	domain.TicketTypeAdult:  {price: 25, occupiesSeat: true},
	domain.TicketTypeChild:  {price: 15, occupiesSeat: true},
	domain.TicketTypeInfant: {price: 0, occupiesSeat: false},
}

// calculateTotals stops counting as soon as the running total passes
// MaxTicketsPerPurchase, so oversized counts cannot wrap around the limit.
// Counts are expected to be positive.
func calculateTotals(requests []domain.TicketTypeRequest) domain.TicketTotals {
	var totals domain.TicketTotals

	for _, req := range requests {
		if req.Count > domain.MaxTicketsPerPurchase-totals.Total {
			totals.Total = domain.MaxTicketsPerPurchase + 1
			return totals
		}

		switch req.Type {
		case domain.TicketTypeAdult:
			totals.Adult += req.Count
		case domain.TicketTypeChild:
			totals.Child += req.Count
		case domain.TicketTypeInfant:
			totals.Infant += req.Count
		}

		totals.Total += req.Count
	}

	return totals
}

func validateTotals(totals domain.TicketTotals) error {
	switch {
	case totals.Total == 0:
		return domain.NewRejection(domain.RejectionEmptyPurchase, "no tickets requested")
	case totals.Total > domain.MaxTicketsPerPurchase:
		return domain.NewRejection(
			domain.RejectionTicketLimitExceeded,
			"cannot purchase more than 25 tickets at a time",
		)
	case totals.Adult == 0 && (totals.Child > 0 || totals.Infant > 0):
		return domain.NewRejection(
			domain.RejectionMissingAdult,
			"child or infant tickets cannot be purchased without at least one adult ticket",
		)
	case totals.Infant > totals.Adult:
		return domain.NewRejection(
			domain.RejectionTooManyInfants,
			"each infant must be accompanied by an adult",
		)
	}

	return nil
}

func amountDue(totals domain.TicketTotals) int {
	return countsByType(totals).sum(func(f fare) int { return f.price })
}

func seatsToReserve(totals domain.TicketTotals) int {
	return countsByType(totals).sum(func(f fare) int {
		if f.occupiesSeat {
			return 1
		}
		return 0
	})
}

type typeCounts map[domain.TicketType]int

func countsByType(totals domain.TicketTotals) typeCounts {
	return typeCounts{
		domain.TicketTypeAdult:  totals.Adult,
		domain.TicketTypeChild:  totals.Child,
		domain.TicketTypeInfant: totals.Infant,
	}
}

// sum weighs each category's count by the value perTicket returns for its fare.
func (c typeCounts) sum(perTicket func(fare) int) int {
	total := 0
	for t, n := range c {
		total += n * perTicket(fares[t])
	}

	return total
}
