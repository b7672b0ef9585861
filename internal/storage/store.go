// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitledger/splitledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence operations the services need. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, ...)
// without touching the service layer.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)
	AddGroupMembers(ctx context.Context, groupID string, members []string) error

	// Expenses. Split line amounts are immutable after CreateExpense; only
	// RecordSettlement flips paid flags.
	CreateExpense(ctx context.Context, expense *models.SplitExpense) error
	GetExpense(ctx context.Context, expenseID string) (*models.SplitExpense, error)
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.SplitExpense, error)
	ListUnsettledByGroup(ctx context.Context, groupID string) ([]*models.SplitExpense, error)
	ListUnsettledByParticipant(ctx context.Context, userID string) ([]*models.SplitExpense, error)

	// RecordSettlement persists the settlement, marks the payer's split
	// lines on every related expense paid, recomputes each expense's
	// settled flag, and bumps the group's settled total. All of it happens
	// in one transaction.
	RecordSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	ListSettlementsByParticipant(ctx context.Context, userID string) ([]*models.Settlement, error)
	SetSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus, reason string) error

	// Close releases any resources held by the store.
	Close() error
}
