// Package server assembles the HTTP API: routing, middleware, and the JSON
// handlers that translate between wire requests and the service layer.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/splitledger/splitledger/internal/auth"
	"github.com/splitledger/splitledger/internal/config"
	"github.com/splitledger/splitledger/internal/middleware"
	"github.com/splitledger/splitledger/internal/service"
)

// Server wires the services behind the HTTP surface.
type Server struct {
	authService       *service.AuthService
	groupService      *service.GroupService
	expenseService    *service.ExpenseService
	settlementService *service.SettlementService

	jwtManager *auth.JWTManager
	engine     *gin.Engine
}

// New builds the server and registers every route.
func New(
	cfg *config.Config,
	authService *service.AuthService,
	groupService *service.GroupService,
	expenseService *service.ExpenseService,
	settlementService *service.SettlementService,
	jwtManager *auth.JWTManager,
) *Server {
	s := &Server{
		authService:       authService,
		groupService:      groupService,
		expenseService:    expenseService,
		settlementService: settlementService,
		jwtManager:        jwtManager,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.CORS(cfg.CORSOrigins))

	engine.GET("/healthz", s.handleHealth)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", s.handleRegister)
		authRoutes.POST("/login", s.handleLogin)
		authRoutes.GET("/me", middleware.RequireAuth(jwtManager), s.handleCurrentUser)

		protected := api.Group("", middleware.RequireAuth(jwtManager))
		{
			protected.POST("/groups", s.handleCreateGroup)
			protected.GET("/groups", s.handleListGroups)
			protected.GET("/groups/:id", s.handleGetGroup)
			protected.POST("/groups/:id/members", s.handleAddMembers)
			protected.GET("/groups/:id/expenses", s.handleListGroupExpenses)
			protected.GET("/groups/:id/balances", s.handleGroupBalances)
			protected.GET("/groups/:id/settlements", s.handleListGroupSettlements)

			protected.POST("/expenses", s.handleCreateExpense)
			protected.GET("/expenses/:id", s.handleGetExpense)

			protected.GET("/balances", s.handleUserBalances)

			protected.POST("/settlements", s.handleRecordSettlement)
			protected.POST("/settlements/:id/dispute", s.handleDisputeSettlement)
			protected.POST("/settlements/:id/verify", s.handleVerifySettlement)
		}
	}

	s.engine = engine
	return s
}

// Handler exposes the router for http.Server and tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
