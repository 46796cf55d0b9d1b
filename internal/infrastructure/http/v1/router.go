// Package v1 provides the HTTP API.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "tillpoint/internal/core/context"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/domain/catalogs/product"
	"tillpoint/internal/domain/documents/bill"
	"tillpoint/internal/domain/reports"
	"tillpoint/internal/infrastructure/http/v1/handlers"
	"tillpoint/internal/infrastructure/http/v1/middleware"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/pkg/logger"
)

// RouterConfig holds everything the router wires together.
type RouterConfig struct {
	Pool           *postgres.Pool
	Logger         *logger.Logger
	JWTValidator   middleware.JWTValidator
	AuthService    *auth.Service
	ProductService *product.Service
	BillService    *bill.Service
	ReportsService *reports.Service
	AuditService   handlers.AuditReader
	Development    bool
}

// NewRouter creates and configures the Gin router.
// Middleware order: Recovery, Trace, Logger, ErrorHandler.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	productHandler := handlers.NewProductHandler(cfg.ProductService, cfg.ReportsService, cfg.AuditService)
	billHandler := handlers.NewBillHandler(cfg.BillService, cfg.ReportsService)

	api := router.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/verify", middleware.Auth(cfg.JWTValidator), authHandler.Verify)
		}

		protected := api.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		adminOnly := middleware.RequireRole(appctx.RoleAdmin)

		products := protected.Group("/products")
		{
			products.GET("", productHandler.List)
			products.POST("", adminOnly, productHandler.Create)

			// Fixed paths before the :id wildcard.
			products.GET("/daily-income", productHandler.DailyIncome)
			products.GET("/inventory/total", productHandler.InventorySummary)
			products.GET("/inventory/category", productHandler.CategoryReport)
			products.GET("/inventory/income-stats", productHandler.IncomeStats)

			products.GET("/:id", productHandler.Get)
			products.PATCH("/:id", adminOnly, productHandler.Update)
			products.GET("/:id/audit", adminOnly, productHandler.AuditHistory)
			products.DELETE("/:id", adminOnly, productHandler.Delete)
		}

		bills := protected.Group("/bills")
		{
			bills.GET("", billHandler.List)
			bills.POST("/generate", billHandler.Generate)
			bills.GET("/income-stats", billHandler.IncomeStats)
			bills.GET("/:id", billHandler.Get)
			bills.GET("/:id/pdf", billHandler.Receipt)
		}
	}

	return router
}
