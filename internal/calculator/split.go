// Package calculator implements the expense-splitting and settlement engine:
// split policies, pairwise balance aggregation, and greedy debt
// simplification. Everything here is pure computation over value objects;
// persistence is the caller's problem.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

var (
	ErrNoParticipants     = errors.New("must have at least one participant")
	ErrNonPositiveTotal   = errors.New("total amount must be greater than zero")
	ErrUnknownSplitType   = errors.New("unknown split type")
	ErrLengthMismatch     = errors.New("rule data length does not match participant count")
	ErrSumMismatch        = errors.New("exact amounts do not sum to the total")
	ErrPercentageMismatch = errors.New("percentages do not sum to 100")
	ErrZeroShares         = errors.New("total shares must be greater than zero")
)

// percentTolerance is the allowed drift when checking that percentages sum
// to 100. Amount checks have no tolerance: cents either match or they don't.
var percentTolerance = decimal.RequireFromString("0.01")

var oneHundred = decimal.NewFromInt(100)

// RuleData carries the per-participant inputs for the non-equal split
// policies. Exactly one field is consulted, chosen by the split type.
type RuleData struct {
	// AmountsCents is one amount per participant for exact splits.
	AmountsCents []int64

	// Percentages is one percentage per participant for percentage splits.
	Percentages []decimal.Decimal

	// Shares is one share weight per participant for share splits.
	Shares []decimal.Decimal
}

// ComputeSplits divides totalCents among participants under the given split
// type and returns one unpaid line per participant, in participant order.
// The lines always sum to totalCents exactly; rounding remainders are
// assigned deterministically (first participant for equal splits, last for
// percentage and share splits). Pure and deterministic: no side effects, no
// partial results on error.
func ComputeSplits(totalCents int64, participants []string, splitType models.SplitType, rule RuleData) ([]models.SplitLine, error) {
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if totalCents <= 0 {
		return nil, ErrNonPositiveTotal
	}

	switch splitType {
	case models.SplitEqual:
		return equalSplit(totalCents, participants), nil
	case models.SplitExact:
		return exactSplit(totalCents, participants, rule.AmountsCents)
	case models.SplitPercentage:
		return percentageSplit(totalCents, participants, rule.Percentages)
	case models.SplitShares:
		return sharesSplit(totalCents, participants, rule.Shares)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSplitType, splitType)
	}
}

// equalSplit gives everyone floor(total/n); the first participant takes the
// leftover cents so the sum matches exactly.
func equalSplit(totalCents int64, participants []string) []models.SplitLine {
	n := int64(len(participants))
	per := totalCents / n
	remainder := totalCents - per*n

	lines := make([]models.SplitLine, len(participants))
	for i, p := range participants {
		amount := per
		if i == 0 {
			amount += remainder
		}
		lines[i] = models.SplitLine{Participant: p, AmountCents: amount}
	}
	return lines
}

// exactSplit uses the caller-supplied amounts verbatim. With integer cents
// the reconciliation check is exact equality.
func exactSplit(totalCents int64, participants []string, amounts []int64) ([]models.SplitLine, error) {
	if len(amounts) != len(participants) {
		return nil, ErrLengthMismatch
	}

	var sum int64
	for _, a := range amounts {
		sum += a
	}
	if sum != totalCents {
		return nil, fmt.Errorf("%w: amounts sum to %d cents, total is %d cents", ErrSumMismatch, sum, totalCents)
	}

	lines := make([]models.SplitLine, len(participants))
	for i, p := range participants {
		lines[i] = models.SplitLine{Participant: p, AmountCents: amounts[i]}
	}
	return lines, nil
}

// percentageSplit rounds every participant's share to the cent except the
// last, who absorbs the running remainder.
func percentageSplit(totalCents int64, participants []string, percentages []decimal.Decimal) ([]models.SplitLine, error) {
	if len(percentages) != len(participants) {
		return nil, ErrLengthMismatch
	}

	sum := decimal.Zero
	for _, pct := range percentages {
		sum = sum.Add(pct)
	}
	if sum.Sub(oneHundred).Abs().GreaterThan(percentTolerance) {
		return nil, fmt.Errorf("%w: got %s", ErrPercentageMismatch, sum)
	}

	lines := make([]models.SplitLine, len(participants))
	var allocated int64
	for i, p := range participants {
		pct := percentages[i]
		var amount int64
		if i == len(participants)-1 {
			amount = totalCents - allocated
		} else {
			amount = money.RoundedShare(totalCents, pct, oneHundred)
			allocated += amount
		}
		lines[i] = models.SplitLine{Participant: p, AmountCents: amount, Percentage: &pct}
	}
	return lines, nil
}

// sharesSplit divides proportionally to share weights; the last participant
// absorbs the remainder, matching the percentage policy.
func sharesSplit(totalCents int64, participants []string, shares []decimal.Decimal) ([]models.SplitLine, error) {
	if len(shares) != len(participants) {
		return nil, ErrLengthMismatch
	}

	totalShares := decimal.Zero
	for _, s := range shares {
		totalShares = totalShares.Add(s)
	}
	if !totalShares.IsPositive() {
		return nil, ErrZeroShares
	}

	lines := make([]models.SplitLine, len(participants))
	var allocated int64
	for i, p := range participants {
		share := shares[i]
		var amount int64
		if i == len(participants)-1 {
			amount = totalCents - allocated
		} else {
			amount = money.RoundedShare(totalCents, share, totalShares)
			allocated += amount
		}
		lines[i] = models.SplitLine{Participant: p, AmountCents: amount, Shares: &share}
	}
	return lines, nil
}
