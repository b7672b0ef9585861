package calculator

import (
	"testing"
)

// applyPlan nets a payment plan against per-party positions and returns the
// residual position map.
func applyPlan(balances []NetBalance, plan []Transaction) map[string]int64 {
	net := make(map[string]int64)
	for _, b := range balances {
		net[b.PartyA] += b.AmountCents
		net[b.PartyB] -= b.AmountCents
	}
	for _, tx := range plan {
		net[tx.From] += tx.AmountCents
		net[tx.To] -= tx.AmountCents
	}
	return net
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name     string
		balances []NetBalance
		wantLen  int
	}{
		{
			name:     "empty input",
			balances: nil,
			wantLen:  0,
		},
		{
			name: "single pair",
			balances: []NetBalance{
				{PartyA: "alice", PartyB: "bob", AmountCents: 5000},
			},
			wantLen: 1,
		},
		{
			name: "one debtor two creditors",
			balances: []NetBalance{
				{PartyA: "alice", PartyB: "carol", AmountCents: 5000},
				{PartyA: "bob", PartyB: "carol", AmountCents: 3000},
			},
			wantLen: 2,
		},
		{
			name: "chain collapses",
			// alice -> bob -> carol, 1000 each: one payment suffices.
			balances: []NetBalance{
				{PartyA: "bob", PartyB: "alice", AmountCents: 1000},
				{PartyA: "carol", PartyB: "bob", AmountCents: 1000},
			},
			wantLen: 1,
		},
		{
			name: "sub-cent positions ignored",
			balances: []NetBalance{
				{PartyA: "alice", PartyB: "bob", AmountCents: 1},
			},
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Simplify(tt.balances)
			if len(plan) != tt.wantLen {
				t.Fatalf("got %d transactions, want %d: %+v", len(plan), tt.wantLen, plan)
			}

			for _, tx := range plan {
				if tx.AmountCents <= epsilonCents {
					t.Errorf("transaction %+v below epsilon", tx)
				}
				if tx.From == tx.To {
					t.Errorf("transaction %+v pays self", tx)
				}
			}

			// Applying the plan must zero every party (within epsilon).
			for party, residual := range applyPlan(tt.balances, plan) {
				if residual > epsilonCents || residual < -epsilonCents {
					t.Errorf("party %s left with residual %d cents", party, residual)
				}
			}
		})
	}
}

func TestSimplifyStarTopology(t *testing.T) {
	// carol owes alice 50.00 and bob 30.00: exactly two payments,
	// carol->alice 5000 and carol->bob 3000, in either order.
	balances := []NetBalance{
		{PartyA: "alice", PartyB: "carol", AmountCents: 5000},
		{PartyA: "bob", PartyB: "carol", AmountCents: 3000},
	}

	plan := Simplify(balances)
	if len(plan) != 2 {
		t.Fatalf("got %d transactions, want 2: %+v", len(plan), plan)
	}

	byTo := make(map[string]Transaction)
	for _, tx := range plan {
		if tx.From != "carol" {
			t.Errorf("unexpected payer %s", tx.From)
		}
		byTo[tx.To] = tx
	}
	if tx := byTo["alice"]; tx.AmountCents != 5000 {
		t.Errorf("payment to alice = %d, want 5000", tx.AmountCents)
	}
	if tx := byTo["bob"]; tx.AmountCents != 3000 {
		t.Errorf("payment to bob = %d, want 3000", tx.AmountCents)
	}
}

func TestSimplifyDeterministic(t *testing.T) {
	balances := []NetBalance{
		{PartyA: "alice", PartyB: "dave", AmountCents: 4000},
		{PartyA: "bob", PartyB: "dave", AmountCents: 4000},
		{PartyA: "carol", PartyB: "dave", AmountCents: 2000},
	}

	first := Simplify(balances)
	for i := 0; i < 10; i++ {
		again := Simplify(balances)
		if len(again) != len(first) {
			t.Fatalf("plan length changed between runs")
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("plan differs between runs: %+v vs %+v", first, again)
			}
		}
	}
}
