package service

import "errors"

// Domain errors surfaced by the services. All are non-retriable: the caller
// must supply corrected input.
var (
	// ErrSelfSettlement rejects a settlement whose payer equals the payee.
	ErrSelfSettlement = errors.New("payer and payee must be different participants")

	// ErrMemberNotInGroup rejects a group-scoped operation that references a
	// user who is not a member of the group.
	ErrMemberNotInGroup = errors.New("participant is not a member of the group")

	// ErrNotParticipant rejects access to an expense by a user who is not a
	// party to it.
	ErrNotParticipant = errors.New("user is not a participant of this expense")

	// ErrPayerNotParticipant rejects an expense whose payer is not among the
	// participants.
	ErrPayerNotParticipant = errors.New("payer must be one of the participants")

	// ErrCurrencyMismatch rejects amounts in a currency other than the
	// group's ledger currency.
	ErrCurrencyMismatch = errors.New("currency does not match the group ledger currency")

	// ErrAlreadySettled rejects a settlement against an obligation that is
	// already fully paid.
	ErrAlreadySettled = errors.New("obligation is already settled")

	// ErrNotParty rejects a settlement status change by someone other than
	// the payer or payee.
	ErrNotParty = errors.New("only a party to the settlement may change its status")

	// ErrMissingReason rejects a dispute without a reason.
	ErrMissingReason = errors.New("dispute reason is required")
)
