package models

// Group represents a shared space: a reusable set of members who split
// expenses in a single ledger currency. Groups own expenses and settlements
// and track the running total of verified settlement amounts.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates", "Ski Trip").
	Name string

	// Currency is the 3-letter ledger currency all group amounts use.
	Currency string

	// Members is the list of member user IDs.
	Members []string

	// SettledTotalCents is the aggregate of all settlement amounts recorded
	// against this group, in cents.
	SettledTotalCents int64

	// CreatedBy is the user ID that created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}
