package calculator

import (
	"sort"

	"github.com/splitledger/splitledger/internal/models"
)

// epsilonCents is the threshold below which residual balances are treated as
// zero and never surfaced.
const epsilonCents = 1

// NetBalance is the aggregated signed amount between two parties after
// netting all shared expenses and settlements. A positive amount always
// means PartyB owes PartyA. Ephemeral: recomputed on demand, never persisted.
type NetBalance struct {
	PartyA      string
	PartyB      string
	AmountCents int64
}

// pairKey is an unordered participant pair, canonicalized so Lo < Hi.
type pairKey struct {
	lo, hi string
}

func makePair(a, b string) pairKey {
	if a < b {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// GroupBalances folds unsettled expenses and verified settlements into net
// pairwise balances. The fold is read-only and idempotent: identical input
// state always yields an identical result.
//
// Unpaid split lines add debt from the line's participant toward the payer.
// Lines already marked paid are skipped: the settlement that cleared them
// took effect through the paid flag. Verified settlements net in the
// opposite direction only when they carry no related expenses; a settlement
// linked to expenses already reduced the fold by flipping those lines.
func GroupBalances(expenses []models.SplitExpense, settlements []models.Settlement) []NetBalance {
	acc := make(map[pairKey]int64)

	for i := range expenses {
		exp := &expenses[i]
		if exp.IsSettled {
			continue
		}
		for _, line := range exp.Splits {
			if line.Participant == exp.PaidBy || line.Paid {
				continue
			}
			key := makePair(exp.PaidBy, line.Participant)
			// Positive accumulator value means key.hi owes key.lo.
			if exp.PaidBy == key.lo {
				acc[key] += line.AmountCents
			} else {
				acc[key] -= line.AmountCents
			}
		}
	}

	for i := range settlements {
		s := &settlements[i]
		if s.Status != models.SettlementVerified || len(s.RelatedExpenses) > 0 {
			continue
		}
		key := makePair(s.PaidBy, s.PaidTo)
		// A payment from PaidBy reduces what PaidBy owes PaidTo.
		if s.PaidTo == key.lo {
			acc[key] -= s.AmountCents
		} else {
			acc[key] += s.AmountCents
		}
	}

	balances := make([]NetBalance, 0, len(acc))
	for key, net := range acc {
		switch {
		case net > epsilonCents:
			balances = append(balances, NetBalance{PartyA: key.lo, PartyB: key.hi, AmountCents: net})
		case net < -epsilonCents:
			balances = append(balances, NetBalance{PartyA: key.hi, PartyB: key.lo, AmountCents: -net})
		}
	}

	sort.Slice(balances, func(i, j int) bool {
		if balances[i].PartyA != balances[j].PartyA {
			return balances[i].PartyA < balances[j].PartyA
		}
		return balances[i].PartyB < balances[j].PartyB
	})
	return balances
}

// UserBalances computes net balances as GroupBalances does, then keeps only
// the pairs involving userID.
func UserBalances(userID string, expenses []models.SplitExpense, settlements []models.Settlement) []NetBalance {
	all := GroupBalances(expenses, settlements)
	out := make([]NetBalance, 0, len(all))
	for _, b := range all {
		if b.PartyA == userID || b.PartyB == userID {
			out = append(out, b)
		}
	}
	return out
}

// BalanceSummary is a user-centric view of one net balance: a positive
// amount means the counterparty owes the user.
type BalanceSummary struct {
	Counterparty string
	AmountCents  int64
}

// Summarize converts net balances into counterparty summaries from userID's
// point of view.
func Summarize(userID string, balances []NetBalance) []BalanceSummary {
	out := make([]BalanceSummary, 0, len(balances))
	for _, b := range balances {
		switch userID {
		case b.PartyA:
			out = append(out, BalanceSummary{Counterparty: b.PartyB, AmountCents: b.AmountCents})
		case b.PartyB:
			out = append(out, BalanceSummary{Counterparty: b.PartyA, AmountCents: -b.AmountCents})
		}
	}
	return out
}
