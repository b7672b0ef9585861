package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
)

func pcts(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func sumLines(lines []models.SplitLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.AmountCents
	}
	return sum
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		totalCents   int64
		participants []string
		splitType    models.SplitType
		rule         RuleData
		wantErr      error
		wantAmounts  []int64
	}{
		{
			name:         "equal split with remainder to first",
			totalCents:   10000, // 100.00
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitEqual,
			wantAmounts:  []int64{3334, 3333, 3333},
		},
		{
			name:         "equal split divides evenly",
			totalCents:   9000,
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitEqual,
			wantAmounts:  []int64{3000, 3000, 3000},
		},
		{
			name:         "equal split single participant",
			totalCents:   777,
			participants: []string{"alice"},
			splitType:    models.SplitEqual,
			wantAmounts:  []int64{777},
		},
		{
			name:         "exact split",
			totalCents:   10000,
			participants: []string{"alice", "bob"},
			splitType:    models.SplitExact,
			rule:         RuleData{AmountsCents: []int64{6000, 4000}},
			wantAmounts:  []int64{6000, 4000},
		},
		{
			name:         "exact split sum mismatch",
			totalCents:   10000,
			participants: []string{"alice", "bob"},
			splitType:    models.SplitExact,
			rule:         RuleData{AmountsCents: []int64{4000, 4000}},
			wantErr:      ErrSumMismatch,
		},
		{
			name:         "exact split length mismatch",
			totalCents:   10000,
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitExact,
			rule:         RuleData{AmountsCents: []int64{5000, 5000}},
			wantErr:      ErrLengthMismatch,
		},
		{
			name:         "percentage split 50/30/20",
			totalCents:   100000, // 1000.00
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitPercentage,
			rule:         RuleData{Percentages: pcts("50", "30", "20")},
			wantAmounts:  []int64{50000, 30000, 20000},
		},
		{
			name:         "percentage split remainder to last",
			totalCents:   10000,
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitPercentage,
			rule:         RuleData{Percentages: pcts("33.33", "33.33", "33.34")},
			wantAmounts:  []int64{3333, 3333, 3334},
		},
		{
			name:         "percentage split thirds absorb rounding",
			totalCents:   1000,
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitPercentage,
			// 33.333 * 3 = 99.999, inside the 0.01 tolerance.
			rule:        RuleData{Percentages: pcts("33.333", "33.333", "33.333")},
			wantAmounts: []int64{333, 333, 334},
		},
		{
			name:         "percentage split does not sum to 100",
			totalCents:   10000,
			participants: []string{"alice", "bob"},
			splitType:    models.SplitPercentage,
			rule:         RuleData{Percentages: pcts("50", "40")},
			wantErr:      ErrPercentageMismatch,
		},
		{
			name:         "percentage split length mismatch",
			totalCents:   10000,
			participants: []string{"alice", "bob"},
			splitType:    models.SplitPercentage,
			rule:         RuleData{Percentages: pcts("100")},
			wantErr:      ErrLengthMismatch,
		},
		{
			name:         "shares split 2/1/1",
			totalCents:   10000,
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitShares,
			rule:         RuleData{Shares: pcts("2", "1", "1")},
			wantAmounts:  []int64{5000, 2500, 2500},
		},
		{
			name:         "shares split remainder to last",
			totalCents:   10000,
			participants: []string{"alice", "bob", "carol"},
			splitType:    models.SplitShares,
			rule:         RuleData{Shares: pcts("1", "1", "1")},
			wantAmounts:  []int64{3333, 3333, 3334},
		},
		{
			name:         "shares split zero total shares",
			totalCents:   10000,
			participants: []string{"alice", "bob"},
			splitType:    models.SplitShares,
			rule:         RuleData{Shares: pcts("0", "0")},
			wantErr:      ErrZeroShares,
		},
		{
			name:         "shares split length mismatch",
			totalCents:   10000,
			participants: []string{"alice", "bob"},
			splitType:    models.SplitShares,
			rule:         RuleData{Shares: pcts("1")},
			wantErr:      ErrLengthMismatch,
		},
		{
			name:         "no participants",
			totalCents:   10000,
			participants: nil,
			splitType:    models.SplitEqual,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "non-positive total",
			totalCents:   0,
			participants: []string{"alice"},
			splitType:    models.SplitEqual,
			wantErr:      ErrNonPositiveTotal,
		},
		{
			name:         "unknown split type",
			totalCents:   10000,
			participants: []string{"alice"},
			splitType:    models.SplitType("random"),
			wantErr:      ErrUnknownSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := ComputeSplits(tt.totalCents, tt.participants, tt.splitType, tt.rule)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeSplits error = %v, want %v", err, tt.wantErr)
				}
				if lines != nil {
					t.Errorf("expected no partial result on error, got %v", lines)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits failed: %v", err)
			}

			if len(lines) != len(tt.participants) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.participants))
			}
			for i, line := range lines {
				if line.Participant != tt.participants[i] {
					t.Errorf("line %d participant = %s, want %s", i, line.Participant, tt.participants[i])
				}
				if line.AmountCents != tt.wantAmounts[i] {
					t.Errorf("line %d amount = %d, want %d", i, line.AmountCents, tt.wantAmounts[i])
				}
				if line.Paid {
					t.Errorf("line %d should start unpaid", i)
				}
			}
			if sum := sumLines(lines); sum != tt.totalCents {
				t.Errorf("lines sum to %d, want %d", sum, tt.totalCents)
			}
		})
	}
}

// Exactness property: the lines sum to the total for every split type across
// awkward totals and participant counts.
func TestComputeSplitsExactness(t *testing.T) {
	totals := []int64{1, 99, 100, 101, 9999, 10001, 333333}
	parties := [][]string{
		{"a"},
		{"a", "b"},
		{"a", "b", "c"},
		{"a", "b", "c", "d", "e", "f", "g"},
	}

	for _, total := range totals {
		for _, ps := range parties {
			lines, err := ComputeSplits(total, ps, models.SplitEqual, RuleData{})
			if err != nil {
				t.Fatalf("equal split(%d, %d parties): %v", total, len(ps), err)
			}
			if sum := sumLines(lines); sum != total {
				t.Errorf("equal split(%d, %d parties): sum = %d", total, len(ps), sum)
			}

			shares := make([]decimal.Decimal, len(ps))
			for i := range shares {
				shares[i] = decimal.NewFromInt(int64(i + 1))
			}
			lines, err = ComputeSplits(total, ps, models.SplitShares, RuleData{Shares: shares})
			if err != nil {
				t.Fatalf("shares split(%d, %d parties): %v", total, len(ps), err)
			}
			if sum := sumLines(lines); sum != total {
				t.Errorf("shares split(%d, %d parties): sum = %d", total, len(ps), sum)
			}
		}
	}
}
