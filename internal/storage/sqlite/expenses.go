package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// CreateExpense persists an expense and its split lines atomically.
// Generates ID and CreatedAt if unset. Lines are written in slice order and
// read back in the same order.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.SplitExpense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, description, total_cents, currency, paid_by, split_type, group_id, is_settled, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, expense.Description, expense.TotalCents, expense.Currency,
			expense.PaidBy, string(expense.SplitType), nullable(expense.GroupID),
			boolToInt(expense.IsSettled), expense.CreatedBy, expense.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, line := range expense.Splits {
			var paidAt interface{}
			if line.PaidAt != 0 {
				paidAt = line.PaidAt
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO split_lines (expense_id, participant, position, amount_cents, percentage, shares, paid, paid_at)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				expense.ID, line.Participant, i, line.AmountCents,
				decimalOrNil(line.Percentage), decimalOrNil(line.Shares),
				boolToInt(line.Paid), paidAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert split line: %w", err)
			}
		}
		return nil
	})
}

// GetExpense retrieves an expense with all its split lines.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.SplitExpense, error) {
	return getExpense(ctx, s.db, expenseID)
}

// ListExpensesByGroup retrieves all expenses for a group, newest first,
// inside one read transaction so callers see a consistent snapshot.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.SplitExpense, error) {
	return s.listExpenses(ctx,
		"SELECT id FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id",
		groupID,
	)
}

// ListUnsettledByGroup retrieves the group's expenses that still have unpaid
// split lines.
func (s *SQLiteStore) ListUnsettledByGroup(ctx context.Context, groupID string) ([]*models.SplitExpense, error) {
	return s.listExpenses(ctx,
		"SELECT id FROM expenses WHERE group_id = ? AND is_settled = 0 ORDER BY created_at, id",
		groupID,
	)
}

// ListUnsettledByParticipant retrieves every unsettled expense the user is a
// party to, either as payer or on a split line.
func (s *SQLiteStore) ListUnsettledByParticipant(ctx context.Context, userID string) ([]*models.SplitExpense, error) {
	return s.listExpenses(ctx,
		`SELECT id FROM expenses
		 WHERE is_settled = 0
		   AND (paid_by = ? OR id IN (SELECT expense_id FROM split_lines WHERE participant = ?))
		 ORDER BY created_at, id`,
		userID, userID,
	)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, idQuery string, args ...interface{}) ([]*models.SplitExpense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, idQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense ids: %w", err)
	}

	expenses := make([]*models.SplitExpense, 0, len(ids))
	for _, id := range ids {
		expense, err := getExpense(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}
	return expenses, nil
}

func getExpense(ctx context.Context, q querier, expenseID string) (*models.SplitExpense, error) {
	expense := &models.SplitExpense{}
	var groupID sql.NullString
	var isSettled int
	err := q.QueryRowContext(ctx,
		`SELECT id, description, total_cents, currency, paid_by, split_type, group_id, is_settled, created_by, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.Description, &expense.TotalCents, &expense.Currency,
		&expense.PaidBy, (*string)(&expense.SplitType), &groupID, &isSettled,
		&expense.CreatedBy, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.GroupID = groupID.String
	expense.IsSettled = isSettled != 0

	rows, err := q.QueryContext(ctx,
		`SELECT participant, amount_cents, percentage, shares, paid, paid_at
		 FROM split_lines WHERE expense_id = ? ORDER BY position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get split lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line models.SplitLine
		var percentage, shares sql.NullString
		var paid int
		var paidAt sql.NullInt64
		if err := rows.Scan(&line.Participant, &line.AmountCents, &percentage, &shares, &paid, &paidAt); err != nil {
			return nil, fmt.Errorf("failed to scan split line: %w", err)
		}
		line.Paid = paid != 0
		line.PaidAt = paidAt.Int64
		if line.Percentage, err = parseDecimal(percentage); err != nil {
			return nil, fmt.Errorf("failed to parse percentage: %w", err)
		}
		if line.Shares, err = parseDecimal(shares); err != nil {
			return nil, fmt.Errorf("failed to parse shares: %w", err)
		}
		expense.Splits = append(expense.Splits, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate split lines: %w", err)
	}
	return expense, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func decimalOrNil(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseDecimal(v sql.NullString) (*decimal.Decimal, error) {
	if !v.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
