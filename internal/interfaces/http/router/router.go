package router

import (
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/auth"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/infrastructure/logger"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/handler"
	"github.com/ahmad-alhalwany/payment-system-sub000/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config bundles the dependencies of the HTTP router
type Config struct {
	Logger     *zap.Logger
	JWTService *auth.JWTService

	System   *handler.SystemHandler
	Branch   *handler.BranchHandler
	Transfer *handler.TransferHandler
}

// New builds the gin engine with all routes and middleware. Health endpoints
// are open; everything under /api/v1 requires a valid token, and the
// director-only balance operations additionally require the director role.
func New(cfg Config) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
	)

	engine.GET("/health", cfg.System.Health)
	engine.GET("/system/info", cfg.System.Info)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(cfg.JWTService, cfg.Logger))

	transfers := api.Group("/transfers")
	{
		transfers.POST("", cfg.Transfer.Create)
		transfers.GET("", cfg.Transfer.List)
		transfers.GET("/:id", cfg.Transfer.Get)
		transfers.GET("/:id/profits", cfg.Transfer.Profits)
		transfers.POST("/:id/status", cfg.Transfer.UpdateStatus)
		transfers.POST("/:id/received", cfg.Transfer.MarkReceived)
	}

	branches := api.Group("/branches")
	{
		branches.GET("", cfg.Branch.List)
		branches.GET("/:id", cfg.Branch.Get)
		branches.GET("/:id/funds", cfg.Branch.FundsHistory)
		branches.GET("/:id/profit-summary", cfg.Transfer.ProfitSummary)

		director := branches.Group("")
		director.Use(middleware.RequireRole(auth.RoleDirector))
		{
			director.POST("", cfg.Branch.Create)
			director.PUT("/:id/tax-rate", cfg.Branch.SetTaxRate)
			director.POST("/:id/allocate", cfg.Branch.AllocateFunds)
			director.DELETE("/:id/allocations", cfg.Branch.ResetAllocation)
		}
	}

	return engine
}
