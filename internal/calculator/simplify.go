package calculator

import "sort"

// Transaction is one payment in a simplified settlement plan.
type Transaction struct {
	From        string
	To          string
	AmountCents int64
}

// partyAmount pairs a party with the magnitude of their net position.
type partyAmount struct {
	party  string
	amount int64
}

// Simplify reduces a web of pairwise balances to a short list of payments
// that clears every party to zero. Greedy matching of the largest creditor
// against the largest debtor: minimal in practice for star and chain debt
// structures, and always correct, but not guaranteed globally minimal for
// every topology.
func Simplify(balances []NetBalance) []Transaction {
	net := make(map[string]int64)
	for _, b := range balances {
		net[b.PartyA] += b.AmountCents
		net[b.PartyB] -= b.AmountCents
	}

	var creditors, debtors []partyAmount
	for party, amount := range net {
		switch {
		case amount > epsilonCents:
			creditors = append(creditors, partyAmount{party: party, amount: amount})
		case amount < -epsilonCents:
			debtors = append(debtors, partyAmount{party: party, amount: -amount})
		}
	}

	byMagnitude := func(list []partyAmount) func(i, j int) bool {
		return func(i, j int) bool {
			if list[i].amount != list[j].amount {
				return list[i].amount > list[j].amount
			}
			return list[i].party < list[j].party
		}
	}
	sort.Slice(creditors, byMagnitude(creditors))
	sort.Slice(debtors, byMagnitude(debtors))

	var plan []Transaction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		if amount > epsilonCents {
			plan = append(plan, Transaction{
				From:        debtor.party,
				To:          creditor.party,
				AmountCents: amount,
			})
		}

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount <= epsilonCents {
			i++
		}
		if creditor.amount <= epsilonCents {
			j++
		}
	}

	return plan
}
