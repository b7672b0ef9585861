package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/metrics"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// SettlementService records real payments between participants and manages
// their verification lifecycle.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService with the given storage
// backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlementInput is the validated input for recording a payment made
// by the authenticated user.
type RecordSettlementInput struct {
	PaidTo          string
	Amount          decimal.Decimal
	Currency        string
	GroupID         string
	RelatedExpenses []string
	Note            string
}

// Record persists a payment from paidBy to in.PaidTo with status verified,
// marks paidBy's obligations on every related expense paid, and bumps the
// group's settled total. The storage layer applies all side effects in one
// transaction.
func (s *SettlementService) Record(ctx context.Context, paidBy string, in RecordSettlementInput) (*models.Settlement, error) {
	if paidBy == in.PaidTo {
		return nil, ErrSelfSettlement
	}

	amountCents, err := money.PositiveCents(in.Amount)
	if err != nil {
		return nil, err
	}

	currency := money.NormalizeCurrency(in.Currency)
	if err := money.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		for _, party := range []string{paidBy, in.PaidTo} {
			if !group.HasMember(party) {
				return nil, fmt.Errorf("%w: %s", ErrMemberNotInGroup, party)
			}
		}
		if group.Currency != currency {
			return nil, fmt.Errorf("%w: payment is %s, group ledger is %s", ErrCurrencyMismatch, currency, group.Currency)
		}
	}

	for _, expenseID := range in.RelatedExpenses {
		expense, err := s.store.GetExpense(ctx, expenseID)
		if err != nil {
			return nil, err
		}
		line := expense.Line(paidBy)
		if line == nil {
			return nil, fmt.Errorf("%w: expense %s", ErrNotParticipant, expenseID)
		}
		if expense.IsSettled || line.Paid {
			return nil, fmt.Errorf("%w: expense %s", ErrAlreadySettled, expenseID)
		}
	}

	settlement := &models.Settlement{
		GroupID:         in.GroupID,
		PaidBy:          paidBy,
		PaidTo:          in.PaidTo,
		AmountCents:     amountCents,
		Currency:        currency,
		RelatedExpenses: in.RelatedExpenses,
		Status:          models.SettlementVerified,
		Note:            in.Note,
		CreatedBy:       paidBy,
	}
	if err := s.store.RecordSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "error", err)
		return nil, err
	}

	metrics.SettlementsRecorded.Inc()
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"paid_by", settlement.PaidBy,
		"paid_to", settlement.PaidTo,
		"amount_cents", settlement.AmountCents,
		"related_expenses", len(settlement.RelatedExpenses),
	)
	return settlement, nil
}

// Dispute marks a settlement disputed with a reason. Only the payer or the
// payee may dispute.
func (s *SettlementService) Dispute(ctx context.Context, userID, settlementID, reason string) (*models.Settlement, error) {
	if reason == "" {
		return nil, ErrMissingReason
	}

	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if userID != settlement.PaidBy && userID != settlement.PaidTo {
		return nil, ErrNotParty
	}

	if err := s.store.SetSettlementStatus(ctx, settlementID, models.SettlementDisputed, reason); err != nil {
		return nil, err
	}
	slog.Info("Settlement disputed", "settlement_id", settlementID, "by", userID)
	return s.store.GetSettlement(ctx, settlementID)
}

// Verify re-verifies a disputed settlement. Only the payee, who is the party
// asserting they were paid, may verify.
func (s *SettlementService) Verify(ctx context.Context, userID, settlementID string) (*models.Settlement, error) {
	settlement, err := s.store.GetSettlement(ctx, settlementID)
	if err != nil {
		return nil, err
	}
	if userID != settlement.PaidTo {
		return nil, ErrNotParty
	}

	if err := s.store.SetSettlementStatus(ctx, settlementID, models.SettlementVerified, ""); err != nil {
		return nil, err
	}
	slog.Info("Settlement verified", "settlement_id", settlementID, "by", userID)
	return s.store.GetSettlement(ctx, settlementID)
}

// ListByGroup retrieves a group's settlements, restricted to group members.
func (s *SettlementService) ListByGroup(ctx context.Context, userID, groupID string) ([]*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrMemberNotInGroup
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
