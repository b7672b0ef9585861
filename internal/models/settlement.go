package models

// SettlementStatus is the verification state of a recorded payment.
type SettlementStatus string

const (
	// SettlementPending is reserved for payments awaiting confirmation.
	SettlementPending SettlementStatus = "pending"

	// SettlementVerified is the default state at creation.
	SettlementVerified SettlementStatus = "verified"

	// SettlementDisputed marks a payment contested by one of the parties.
	SettlementDisputed SettlementStatus = "disputed"
)

// Valid reports whether s is a known settlement status.
func (s SettlementStatus) Valid() bool {
	switch s {
	case SettlementPending, SettlementVerified, SettlementDisputed:
		return true
	}
	return false
}

// Settlement represents a real payment between two distinct participants,
// intended to reduce or clear outstanding split obligations. Settlements are
// never deleted; status may move verified <-> disputed via explicit action.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to, empty for ad-hoc.
	GroupID string

	// PaidBy is the user who made the payment (debtor settling up).
	PaidBy string

	// PaidTo is the user who received the payment. Always differs from
	// PaidBy.
	PaidTo string

	// AmountCents is the payment amount in integer cents.
	AmountCents int64

	// Currency is the 3-letter ledger currency code.
	Currency string

	// RelatedExpenses lists the expense IDs this payment is meant to clear.
	RelatedExpenses []string

	// Status is the verification state.
	Status SettlementStatus

	// DisputeReason holds the reason supplied when the settlement was
	// disputed, empty otherwise.
	DisputeReason string

	// Note is an optional free-form description.
	Note string

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
