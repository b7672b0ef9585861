// Package models defines the core domain objects for splitledger.
//
// # Models
//
//   - SplitExpense: a shared cost with per-participant obligation lines
//   - SplitLine: one participant's share of an expense
//   - Settlement: a recorded real-world payment between two participants
//   - Group: a shared space with a member list and a ledger currency
//   - User: a registered account
//
// # Design principles
//
//  1. Money is integer cents everywhere; decimals only cross the API edge.
//  2. Split lines are immutable once computed; only paid/paid_at mutate,
//     and paid is monotonic (false -> true, never back).
//  3. Relationships use ID strings instead of pointers to avoid cycles.
//  4. Settlements are never deleted, only marked disputed or re-verified.
package models
