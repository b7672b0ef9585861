package server

import (
	"github.com/shopspring/decimal"

	"github.com/splitledger/splitledger/internal/calculator"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
)

// Request bodies. All monetary amounts cross the wire as decimal strings
// ("12.50"); cents are an internal representation only.

type registerRequest struct {
	Email       string `json:"email" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type createGroupRequest struct {
	Name     string   `json:"name" binding:"required"`
	Currency string   `json:"currency" binding:"required"`
	Members  []string `json:"members"`
}

type addMembersRequest struct {
	Members []string `json:"members" binding:"required"`
}

type createExpenseRequest struct {
	Description  string            `json:"description" binding:"required"`
	Amount       decimal.Decimal   `json:"amount" binding:"required"`
	Currency     string            `json:"currency" binding:"required"`
	PaidBy       string            `json:"paid_by" binding:"required"`
	SplitType    string            `json:"split_type" binding:"required"`
	Participants []string          `json:"participants" binding:"required"`
	ExactAmounts []decimal.Decimal `json:"exact_amounts"`
	Percentages  []decimal.Decimal `json:"percentages"`
	Shares       []decimal.Decimal `json:"shares"`
	GroupID      string            `json:"group_id"`
}

type recordSettlementRequest struct {
	PaidTo          string          `json:"paid_to" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Currency        string          `json:"currency" binding:"required"`
	GroupID         string          `json:"group_id"`
	RelatedExpenses []string        `json:"related_expenses"`
	Note            string          `json:"note"`
}

type disputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// Response bodies.

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type groupResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency"`
	Members      []string        `json:"members"`
	SettledTotal decimal.Decimal `json:"settled_total"`
	CreatedBy    string          `json:"created_by"`
	CreatedAt    int64           `json:"created_at"`
}

type splitLineResponse struct {
	Participant string           `json:"participant"`
	Amount      decimal.Decimal  `json:"amount"`
	Percentage  *decimal.Decimal `json:"percentage,omitempty"`
	Shares      *decimal.Decimal `json:"shares,omitempty"`
	Paid        bool             `json:"paid"`
	PaidAt      int64            `json:"paid_at,omitempty"`
}

type expenseResponse struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	Currency    string              `json:"currency"`
	PaidBy      string              `json:"paid_by"`
	SplitType   string              `json:"split_type"`
	Splits      []splitLineResponse `json:"splits"`
	GroupID     string              `json:"group_id,omitempty"`
	IsSettled   bool                `json:"is_settled"`
	CreatedBy   string              `json:"created_by"`
	CreatedAt   int64               `json:"created_at"`
}

type settlementResponse struct {
	ID              string          `json:"id"`
	GroupID         string          `json:"group_id,omitempty"`
	PaidBy          string          `json:"paid_by"`
	PaidTo          string          `json:"paid_to"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	RelatedExpenses []string        `json:"related_expenses,omitempty"`
	Status          string          `json:"status"`
	DisputeReason   string          `json:"dispute_reason,omitempty"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       int64           `json:"created_at"`
}

type balanceResponse struct {
	PartyA string          `json:"party_a"`
	PartyB string          `json:"party_b"`
	Amount decimal.Decimal `json:"amount"`
}

type balanceSummaryResponse struct {
	Counterparty string          `json:"counterparty"`
	Amount       decimal.Decimal `json:"amount"`
}

type transactionResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type groupBalancesResponse struct {
	Currency     string                `json:"currency"`
	Balances     []balanceResponse     `json:"balances"`
	Plan         []transactionResponse `json:"plan"`
	SettledTotal decimal.Decimal       `json:"settled_total"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:           g.ID,
		Name:         g.Name,
		Currency:     g.Currency,
		Members:      g.Members,
		SettledTotal: money.FromCents(g.SettledTotalCents),
		CreatedBy:    g.CreatedBy,
		CreatedAt:    g.CreatedAt,
	}
}

func toExpenseResponse(e *models.SplitExpense) expenseResponse {
	splits := make([]splitLineResponse, len(e.Splits))
	for i, line := range e.Splits {
		splits[i] = splitLineResponse{
			Participant: line.Participant,
			Amount:      money.FromCents(line.AmountCents),
			Percentage:  line.Percentage,
			Shares:      line.Shares,
			Paid:        line.Paid,
			PaidAt:      line.PaidAt,
		}
	}
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      money.FromCents(e.TotalCents),
		Currency:    e.Currency,
		PaidBy:      e.PaidBy,
		SplitType:   string(e.SplitType),
		Splits:      splits,
		GroupID:     e.GroupID,
		IsSettled:   e.IsSettled,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseResponses(expenses []*models.SplitExpense) []expenseResponse {
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	return out
}

func toSettlementResponse(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:              s.ID,
		GroupID:         s.GroupID,
		PaidBy:          s.PaidBy,
		PaidTo:          s.PaidTo,
		Amount:          money.FromCents(s.AmountCents),
		Currency:        s.Currency,
		RelatedExpenses: s.RelatedExpenses,
		Status:          string(s.Status),
		DisputeReason:   s.DisputeReason,
		Note:            s.Note,
		CreatedAt:       s.CreatedAt,
	}
}

func toBalanceResponses(balances []calculator.NetBalance) []balanceResponse {
	out := make([]balanceResponse, len(balances))
	for i, b := range balances {
		out[i] = balanceResponse{
			PartyA: b.PartyA,
			PartyB: b.PartyB,
			Amount: money.FromCents(b.AmountCents),
		}
	}
	return out
}

func toTransactionResponses(plan []calculator.Transaction) []transactionResponse {
	out := make([]transactionResponse, len(plan))
	for i, tx := range plan {
		out[i] = transactionResponse{
			From:   tx.From,
			To:     tx.To,
			Amount: money.FromCents(tx.AmountCents),
		}
	}
	return out
}
