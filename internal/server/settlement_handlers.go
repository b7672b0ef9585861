package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
)

func (s *Server) handleRecordSettlement(c *gin.Context) {
	var req recordSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	settlement, err := s.settlementService.Record(c.Request.Context(), middleware.GetUserID(c), service.RecordSettlementInput{
		PaidTo:          req.PaidTo,
		Amount:          req.Amount,
		Currency:        req.Currency,
		GroupID:         req.GroupID,
		RelatedExpenses: req.RelatedExpenses,
		Note:            req.Note,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSettlementResponse(settlement))
}

func (s *Server) handleListGroupSettlements(c *gin.Context) {
	settlements, err := s.settlementService.ListByGroup(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]settlementResponse, len(settlements))
	for i, st := range settlements {
		out[i] = toSettlementResponse(st)
	}
	c.JSON(http.StatusOK, gin.H{"settlements": out})
}

func (s *Server) handleDisputeSettlement(c *gin.Context) {
	var req disputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	settlement, err := s.settlementService.Dispute(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettlementResponse(settlement))
}

func (s *Server) handleVerifySettlement(c *gin.Context) {
	settlement, err := s.settlementService.Verify(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSettlementResponse(settlement))
}
