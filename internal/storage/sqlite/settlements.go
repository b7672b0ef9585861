package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/storage"
)

// RecordSettlement persists the settlement and applies its side effects in a
// single transaction: the payer's split line on every related expense is
// marked paid via a targeted update (a no-op if already paid, so replays
// never double-apply), each touched expense's settled flag is recomputed,
// and the group's settled total is bumped. A crash between any of these
// steps rolls the whole payment back.
func (s *SQLiteStore) RecordSettlement(ctx context.Context, settlement *models.Settlement) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}
	if settlement.Status == "" {
		settlement.Status = models.SettlementVerified
	}
	now := time.Now().Unix()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO settlements (id, group_id, paid_by, paid_to, amount_cents, currency, status, dispute_reason, note, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			settlement.ID, nullable(settlement.GroupID), settlement.PaidBy, settlement.PaidTo,
			settlement.AmountCents, settlement.Currency, string(settlement.Status),
			nullable(settlement.DisputeReason), nullable(settlement.Note),
			settlement.CreatedBy, settlement.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement: %w", err)
		}

		for _, expenseID := range settlement.RelatedExpenses {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?)",
				settlement.ID, expenseID,
			); err != nil {
				return fmt.Errorf("failed to link settlement to expense: %w", err)
			}

			// Targeted atomic update: flips exactly this participant's line,
			// and only if it is still unpaid.
			if _, err := tx.ExecContext(ctx,
				`UPDATE split_lines SET paid = 1, paid_at = ?
				 WHERE expense_id = ? AND participant = ? AND paid = 0`,
				now, expenseID, settlement.PaidBy,
			); err != nil {
				return fmt.Errorf("failed to mark split line paid: %w", err)
			}

			// Settled is monotonic: this only ever sets the flag, never
			// clears it.
			if _, err := tx.ExecContext(ctx,
				`UPDATE expenses SET is_settled = 1
				 WHERE id = ? AND is_settled = 0
				   AND NOT EXISTS (SELECT 1 FROM split_lines WHERE expense_id = ? AND paid = 0)`,
				expenseID, expenseID,
			); err != nil {
				return fmt.Errorf("failed to update expense settled flag: %w", err)
			}
		}

		if settlement.GroupID != "" {
			if _, err := tx.ExecContext(ctx,
				"UPDATE groups SET settled_total_cents = settled_total_cents + ? WHERE id = ?",
				settlement.AmountCents, settlement.GroupID,
			); err != nil {
				return fmt.Errorf("failed to update group settled total: %w", err)
			}
		}
		return nil
	})
}

// GetSettlement retrieves a settlement with its related expense IDs.
func (s *SQLiteStore) GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error) {
	settlement, err := s.scanSettlement(s.db.QueryRowContext(ctx,
		selectSettlement+" WHERE id = ?", settlementID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settlement: %w", err)
	}
	if err := s.loadRelatedExpenses(ctx, settlement); err != nil {
		return nil, err
	}
	return settlement, nil
}

// ListSettlementsByGroup retrieves all settlements for a group, newest first.
func (s *SQLiteStore) ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		selectSettlement+" WHERE group_id = ? ORDER BY created_at DESC, id", groupID)
}

// ListSettlementsByParticipant retrieves every settlement the user paid or
// received, newest first.
func (s *SQLiteStore) ListSettlementsByParticipant(ctx context.Context, userID string) ([]*models.Settlement, error) {
	return s.listSettlements(ctx,
		selectSettlement+" WHERE paid_by = ? OR paid_to = ? ORDER BY created_at DESC, id",
		userID, userID)
}

// SetSettlementStatus transitions a settlement's status, replacing the
// dispute reason.
func (s *SQLiteStore) SetSettlementStatus(ctx context.Context, settlementID string, status models.SettlementStatus, reason string) error {
	if !status.Valid() {
		return fmt.Errorf("invalid settlement status %q", status)
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE settlements SET status = ?, dispute_reason = ? WHERE id = ?",
		string(status), nullable(reason), settlementID,
	)
	if err != nil {
		return fmt.Errorf("failed to update settlement status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check settlement update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settlement %s: %w", settlementID, storage.ErrNotFound)
	}
	return nil
}

const selectSettlement = `SELECT id, group_id, paid_by, paid_to, amount_cents, currency, status, dispute_reason, note, created_by, created_at FROM settlements`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLiteStore) scanSettlement(row rowScanner) (*models.Settlement, error) {
	settlement := &models.Settlement{}
	var groupID, reason, note sql.NullString
	err := row.Scan(&settlement.ID, &groupID, &settlement.PaidBy, &settlement.PaidTo,
		&settlement.AmountCents, &settlement.Currency, (*string)(&settlement.Status),
		&reason, &note, &settlement.CreatedBy, &settlement.CreatedAt)
	if err != nil {
		return nil, err
	}
	settlement.GroupID = groupID.String
	settlement.DisputeReason = reason.String
	settlement.Note = note.String
	return settlement, nil
}

func (s *SQLiteStore) listSettlements(ctx context.Context, query string, args ...interface{}) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement, err := s.scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	for _, settlement := range settlements {
		if err := s.loadRelatedExpenses(ctx, settlement); err != nil {
			return nil, err
		}
	}
	return settlements, nil
}

func (s *SQLiteStore) loadRelatedExpenses(ctx context.Context, settlement *models.Settlement) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id FROM settlement_expenses WHERE settlement_id = ? ORDER BY expense_id",
		settlement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get related expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		if err := rows.Scan(&expenseID); err != nil {
			return fmt.Errorf("failed to scan related expense: %w", err)
		}
		settlement.RelatedExpenses = append(settlement.RelatedExpenses, expenseID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate related expenses: %w", err)
	}
	return nil
}
