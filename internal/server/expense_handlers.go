package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/models"
	"github.com/splitledger/splitledger/internal/money"
	"github.com/splitledger/splitledger/internal/service"
)

func (s *Server) handleCreateExpense(c *gin.Context) {
	var req createExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	expense, err := s.expenseService.Create(c.Request.Context(), middleware.GetUserID(c), service.CreateExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		Currency:     req.Currency,
		PaidBy:       req.PaidBy,
		SplitType:    models.SplitType(req.SplitType),
		Participants: req.Participants,
		ExactAmounts: req.ExactAmounts,
		Percentages:  req.Percentages,
		Shares:       req.Shares,
		GroupID:      req.GroupID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleGetExpense(c *gin.Context) {
	expense, err := s.expenseService.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpenseResponse(expense))
}

func (s *Server) handleListGroupExpenses(c *gin.Context) {
	expenses, err := s.expenseService.ListByGroup(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": toExpenseResponses(expenses)})
}

func (s *Server) handleUserBalances(c *gin.Context) {
	summaries, err := s.expenseService.UserBalances(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]balanceSummaryResponse, len(summaries))
	for i, b := range summaries {
		out[i] = balanceSummaryResponse{
			Counterparty: b.Counterparty,
			Amount:       money.FromCents(b.AmountCents),
		}
	}
	c.JSON(http.StatusOK, gin.H{"balances": out})
}

func (s *Server) handleGroupBalances(c *gin.Context) {
	report, err := s.expenseService.GroupBalances(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, groupBalancesResponse{
		Currency:     report.Currency,
		Balances:     toBalanceResponses(report.Balances),
		Plan:         toTransactionResponses(report.Plan),
		SettledTotal: money.FromCents(report.SettledTotalCents),
	})
}
