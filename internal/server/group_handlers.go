package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splitledger/splitledger/internal/middleware"
)

func (s *Server) handleCreateGroup(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	group, err := s.groupService.Create(c.Request.Context(), middleware.GetUserID(c), req.Name, req.Currency, req.Members)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGroupResponse(group))
}

func (s *Server) handleGetGroup(c *gin.Context) {
	group, err := s.groupService.Get(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(group))
}

func (s *Server) handleListGroups(c *gin.Context) {
	groups, err := s.groupService.List(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = toGroupResponse(g)
	}
	c.JSON(http.StatusOK, gin.H{"groups": out})
}

func (s *Server) handleAddMembers(c *gin.Context) {
	var req addMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	group, err := s.groupService.AddMembers(c.Request.Context(), middleware.GetUserID(c), c.Param("id"), req.Members)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(group))
}
