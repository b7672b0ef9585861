package models

import "github.com/shopspring/decimal"

// SplitType is the rule governing how a shared cost is divided.
type SplitType string

const (
	// SplitEqual divides the total evenly; any leftover cents go to the
	// first participant.
	SplitEqual SplitType = "equal"

	// SplitExact uses caller-supplied per-participant amounts that must sum
	// to the total.
	SplitExact SplitType = "exact"

	// SplitPercentage divides by caller-supplied percentages summing to 100;
	// the last participant absorbs the rounding remainder.
	SplitPercentage SplitType = "percentage"

	// SplitShares divides proportionally to caller-supplied share weights;
	// the last participant absorbs the rounding remainder.
	SplitShares SplitType = "shares"
)

// Valid reports whether t is one of the supported split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitExact, SplitPercentage, SplitShares:
		return true
	}
	return false
}

// SplitLine is one participant's obligation on a shared expense.
// AmountCents is immutable once computed; only Paid and PaidAt mutate,
// and Paid only ever transitions false -> true.
type SplitLine struct {
	// Participant is the user ID this line belongs to.
	Participant string

	// AmountCents is this participant's share in integer cents.
	AmountCents int64

	// Percentage is set for percentage splits (e.g. 33.33), nil otherwise.
	Percentage *decimal.Decimal

	// Shares is set for share splits, nil otherwise.
	Shares *decimal.Decimal

	// Paid reports whether this line has been cleared.
	Paid bool

	// PaidAt is the Unix timestamp the line was cleared, 0 if unpaid.
	PaidAt int64
}

// SplitExpense is a shared cost event: one payer fronted the money and each
// participant owes the amount on their split line. The lines always sum to
// TotalCents exactly.
type SplitExpense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is a short human-readable label (e.g. "Dinner at Luigi's").
	Description string

	// TotalCents is the full expense amount in integer cents.
	TotalCents int64

	// Currency is the 3-letter ledger currency code.
	Currency string

	// PaidBy is the user ID of the participant who fronted the money.
	PaidBy string

	// SplitType is the rule the lines were computed under.
	SplitType SplitType

	// Splits holds one line per participant.
	Splits []SplitLine

	// GroupID is the owning group, empty for ad-hoc splits.
	GroupID string

	// IsSettled is true iff every split line is paid. Once true it never
	// reverts.
	IsSettled bool

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64
}

// Line returns the split line for the given participant, or nil.
func (e *SplitExpense) Line(participant string) *SplitLine {
	for i := range e.Splits {
		if e.Splits[i].Participant == participant {
			return &e.Splits[i]
		}
	}
	return nil
}

// Participants returns the participant IDs in line order.
func (e *SplitExpense) Participants() []string {
	out := make([]string, len(e.Splits))
	for i, line := range e.Splits {
		out[i] = line.Participant
	}
	return out
}
