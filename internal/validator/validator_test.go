package validator

import (
	"testing"

	"github.com/metinatakli/cinema-tickets/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRequestValidation(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		requests []domain.TicketTypeRequest
		wantMsg  string
	}{
		{
			name:     "should accept well formed lines",
			requests: []domain.TicketTypeRequest{{Type: domain.TicketTypeAdult, Count: 2}, {Type: domain.TicketTypeInfant, Count: 1}},
		},
		{
			name:    "should require lines",
			wantMsg: "request is required",
		},
		{
			name:     "should require at least one line",
			requests: []domain.TicketTypeRequest{},
			wantMsg:  "request must contain at least 1 item(s)",
		},
		{
			name:     "should reject a non-positive count",
			requests: []domain.TicketTypeRequest{{Type: domain.TicketTypeAdult, Count: 1}, {Type: domain.TicketTypeChild, Count: 0}},
			wantMsg:  "[1].Count must be greater than 0",
		},
		{
			name:     "should reject an unknown type",
			requests: []domain.TicketTypeRequest{{Count: 1}},
			wantMsg:  "[0].Type must be ADULT, CHILD or INFANT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Var(tt.requests, "required,min=1,dive")

			if tt.wantMsg == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, Describe(err), tt.wantMsg)
		})
	}
}
