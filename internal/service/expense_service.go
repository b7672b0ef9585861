package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/metrics"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/storage"
)

// ExpenseService creates shared expenses and computes balance views.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// CreateExpenseInput is the validated input for recording a shared expense.
// Exactly one of ExactAmounts/Percentages/Shares is consulted, chosen by
// SplitType; equal splits need none of them.
type CreateExpenseInput struct {
	Description  string
	Amount       decimal.Decimal
	Currency     string
	PaidBy       string
	SplitType    models.SplitType
	Participants []string
	ExactAmounts []decimal.Decimal
	Percentages  []decimal.Decimal
	Shares       []decimal.Decimal
	GroupID      string
}

// Create computes split lines for the expense and persists it atomically.
// The payer's own line is marked pre-paid: they fronted the money, so they
// owe nothing on it.
func (s *ExpenseService) Create(ctx context.Context, userID string, in CreateExpenseInput) (*models.SplitExpense, error) {
	totalCents, err := money.PositiveCents(in.Amount)
	if err != nil {
		return nil, err
	}

	currency := money.NormalizeCurrency(in.Currency)
	if err := money.ValidateCurrency(currency); err != nil {
		return nil, err
	}

	if !in.SplitType.Valid() {
		return nil, fmt.Errorf("%w: %q", calculator.ErrUnknownSplitType, in.SplitType)
	}
	if !isParticipant(in.PaidBy, in.Participants) {
		return nil, ErrPayerNotParticipant
	}
	if !isParticipant(userID, in.Participants) {
		return nil, ErrNotParticipant
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return nil, err
		}
		for _, p := range in.Participants {
			if !group.HasMember(p) {
				return nil, fmt.Errorf("%w: %s", ErrMemberNotInGroup, p)
			}
		}
		if group.Currency != currency {
			return nil, fmt.Errorf("%w: expense is %s, group ledger is %s", ErrCurrencyMismatch, currency, group.Currency)
		}
	}

	rule := calculator.RuleData{
		Percentages: in.Percentages,
		Shares:      in.Shares,
	}
	if in.SplitType == models.SplitExact {
		rule.AmountsCents = make([]int64, len(in.ExactAmounts))
		for i, a := range in.ExactAmounts {
			cents, err := money.ToCents(a)
			if err != nil {
				return nil, err
			}
			rule.AmountsCents[i] = cents
		}
	}

	lines, err := calculator.ComputeSplits(totalCents, in.Participants, in.SplitType, rule)
	if err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	allPaid := true
	for i := range lines {
		if lines[i].Participant == in.PaidBy {
			lines[i].Paid = true
			lines[i].PaidAt = now
		} else {
			allPaid = false
		}
	}

	expense := &models.SplitExpense{
		Description: in.Description,
		TotalCents:  totalCents,
		Currency:    currency,
		PaidBy:      in.PaidBy,
		SplitType:   in.SplitType,
		Splits:      lines,
		GroupID:     in.GroupID,
		IsSettled:   allPaid,
		CreatedBy:   userID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, err
	}

	metrics.SplitsComputed.WithLabelValues(string(in.SplitType)).Inc()
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"split_type", expense.SplitType,
		"total_cents", expense.TotalCents,
		"participants", len(expense.Splits),
	)
	return expense, nil
}

// Get retrieves an expense, restricted to its participants.
func (s *ExpenseService) Get(ctx context.Context, userID, expenseID string) (*models.SplitExpense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !isParticipant(userID, expense.Participants()) && expense.PaidBy != userID {
		return nil, ErrNotParticipant
	}
	return expense, nil
}

// ListByGroup retrieves a group's expenses, restricted to group members.
func (s *ExpenseService) ListByGroup(ctx context.Context, userID, groupID string) ([]*models.SplitExpense, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrMemberNotInGroup
	}
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// UserBalances folds the user's unsettled expenses and settlements into
// per-counterparty summaries: positive means the counterparty owes the user.
func (s *ExpenseService) UserBalances(ctx context.Context, userID string) ([]calculator.BalanceSummary, error) {
	expenses, err := s.store.ListUnsettledByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := calculator.UserBalances(userID, derefExpenses(expenses), derefSettlements(settlements))
	metrics.BalanceComputations.WithLabelValues("user").Inc()
	return calculator.Summarize(userID, balances), nil
}

// GroupBalanceReport is the group-scope balance view: net pairwise balances,
// the simplified payment plan that clears them, and the group's running
// settled total.
type GroupBalanceReport struct {
	Currency          string
	Balances          []calculator.NetBalance
	Plan              []calculator.Transaction
	SettledTotalCents int64
}

// GroupBalances computes the group's net balances and a simplified payment
// plan, restricted to group members.
func (s *ExpenseService) GroupBalances(ctx context.Context, userID, groupID string) (*GroupBalanceReport, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(userID) {
		return nil, ErrMemberNotInGroup
	}

	expenses, err := s.store.ListUnsettledByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	balances := calculator.GroupBalances(derefExpenses(expenses), derefSettlements(settlements))
	metrics.BalanceComputations.WithLabelValues("group").Inc()

	return &GroupBalanceReport{
		Currency:          group.Currency,
		Balances:          balances,
		Plan:              calculator.Simplify(balances),
		SettledTotalCents: group.SettledTotalCents,
	}, nil
}

// isParticipant checks if the user is in the participants list.
func isParticipant(userID string, participants []string) bool {
	for _, p := range participants {
		if p == userID {
			return true
		}
	}
	return false
}

func derefExpenses(in []*models.SplitExpense) []models.SplitExpense {
	out := make([]models.SplitExpense, len(in))
	for i, e := range in {
		out[i] = *e
	}
	return out
}

func derefSettlements(in []*models.Settlement) []models.Settlement {
	out := make([]models.Settlement, len(in))
	for i, s := range in {
		out[i] = *s
	}
	return out
}
