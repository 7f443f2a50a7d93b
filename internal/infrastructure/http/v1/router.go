// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	appctx "github.com/Iqbalshah786/inventory/internal/core/context"
	"github.com/Iqbalshah786/inventory/internal/domain/auth"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/supplier"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/sale"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/stockintake"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/handlers"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1/middleware"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

// RouterConfig holds the wired services the HTTP layer exposes.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks)
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	AuthService       *auth.Service
	ClientService     *client.Service
	SupplierService   *supplier.Service
	PhoneModelService *phonemodel.Service
	IntakeService     *stockintake.Service
	SaleService       *sale.Service
	LedgerService     *ledger.Service
	ReportService     *reports.Service
}

// tokenValidator adapts auth.Service to the middleware contract.
type tokenValidator struct {
	svc *auth.Service
}

func (v tokenValidator) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	claims, err := v.svc.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &appctx.UserContext{
		UserID:   claims.UserID,
		Username: claims.Username,
	}, nil
}

// NewTokenValidator wraps the auth service for the Auth middleware.
func NewTokenValidator(svc *auth.Service) middleware.JWTValidator {
	return tokenValidator{svc: svc}
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler()

	// API v1
	v1 := router.Group("/api/v1")
	{
		authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

		// Public auth endpoints
		v1.POST("/auth/login", authHandler.Login)

		// Everything else requires a valid token
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		authGroup := protected.Group("/auth")
		{
			authGroup.PUT("/username", authHandler.ChangeUsername)
			authGroup.PUT("/password", authHandler.ChangePassword)
		}

		clientHandler := handlers.NewClientHandler(baseHandler, cfg.ClientService, cfg.ReportService)
		clients := protected.Group("/clients")
		{
			clients.POST("", clientHandler.Create)
			clients.GET("", clientHandler.List)
			clients.GET("/balances", clientHandler.Balances)
			clients.GET("/:id", clientHandler.Get)
			clients.GET("/:id/balance", clientHandler.Balance)
			clients.GET("/:id/ledger", clientHandler.Ledger)
		}

		supplierHandler := handlers.NewSupplierHandler(baseHandler, cfg.SupplierService, cfg.ReportService)
		suppliers := protected.Group("/suppliers")
		{
			suppliers.POST("", supplierHandler.Create)
			suppliers.GET("", supplierHandler.List)
			suppliers.GET("/balances", supplierHandler.Balances)
			suppliers.GET("/:id", supplierHandler.Get)
			suppliers.GET("/:id/balance", supplierHandler.Balance)
			suppliers.GET("/:id/purchases", supplierHandler.Purchases)
		}

		modelHandler := handlers.NewPhoneModelHandler(baseHandler, cfg.PhoneModelService, cfg.LedgerService)
		models := protected.Group("/models")
		{
			models.POST("", modelHandler.Create)
			models.GET("", modelHandler.List)
			models.GET("/:id", modelHandler.Get)
			models.POST("/:id/expense", modelHandler.AddExpense)
		}

		stockHandler := handlers.NewStockHandler(baseHandler, cfg.IntakeService, cfg.ReportService)
		stock := protected.Group("/stock")
		{
			stock.GET("", stockHandler.Lines)
			stock.GET("/positions", stockHandler.Positions)
			stock.POST("/intake", stockHandler.CreateIntake)
			stock.GET("/intake", stockHandler.ListIntakes)
			stock.GET("/intake/:id", stockHandler.GetIntake)
		}

		saleHandler := handlers.NewSaleHandler(baseHandler, cfg.SaleService, cfg.ReportService)
		sales := protected.Group("/sales")
		{
			sales.POST("", saleHandler.Create)
			sales.GET("", saleHandler.List)
			sales.GET("/summary", saleHandler.Summary)
			sales.GET("/:id", saleHandler.Get)
		}

		paymentHandler := handlers.NewPaymentHandler(baseHandler, cfg.LedgerService, cfg.ReportService)
		payments := protected.Group("/payments")
		{
			payments.POST("/received", paymentHandler.Received)
			payments.POST("/paid", paymentHandler.Paid)
		}

		protected.GET("/cashbook", paymentHandler.Cashbook)
	}

	return router
}
