// Package main is the entry point for the phone stock API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Iqbalshah786/inventory/internal/core/types"
	"github.com/Iqbalshah786/inventory/internal/domain/auth"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/client"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/phonemodel"
	"github.com/Iqbalshah786/inventory/internal/domain/catalogs/supplier"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/sale"
	"github.com/Iqbalshah786/inventory/internal/domain/documents/stockintake"
	"github.com/Iqbalshah786/inventory/internal/domain/fx"
	"github.com/Iqbalshah786/inventory/internal/domain/ledger"
	"github.com/Iqbalshah786/inventory/internal/domain/registers/inventory"
	"github.com/Iqbalshah786/inventory/internal/domain/reports"
	v1 "github.com/Iqbalshah786/inventory/internal/infrastructure/http/v1"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres/auth_repo"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres/catalog_repo"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres/document_repo"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres/ledger_repo"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres/register_repo"
	"github.com/Iqbalshah786/inventory/internal/infrastructure/storage/postgres/report_repo"
	"github.com/Iqbalshah786/inventory/pkg/logger"
)

func main() {
	// .env is optional; real deployments set variables directly
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting phonestock server")

	// --- Database ---
	dsn := mustEnv("DATABASE_URL")
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatalw("failed to ensure schema", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	recorder, err := postgres.NewAuditRecorder(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit recorder", "error", err)
	}

	// --- Currency converter ---
	rate, err := types.NewMoneyFromString(getEnv("AED_PER_USD", fx.DefaultRate))
	if err != nil {
		log.Fatalw("invalid AED_PER_USD", "error", err)
	}
	converter, err := fx.New(rate)
	if err != nil {
		log.Fatalw("failed to initialize converter", "error", err)
	}
	log.Infow("exchange rate configured", "aed_per_usd", rate)

	// --- Repositories ---
	adminRepo := auth_repo.NewAdminRepo(txManager)
	clientRepo := catalog_repo.NewClientRepo(txManager)
	supplierRepo := catalog_repo.NewSupplierRepo(txManager)
	modelRepo := catalog_repo.NewPhoneModelRepo(txManager)
	inventoryRepo := register_repo.NewInventoryRepo(txManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(txManager)
	lotRepo := document_repo.NewPurchaseLotRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	// --- Services ---
	issuer := auth.NewTokenIssuer(mustEnv("JWT_SECRET"), auth.DefaultTokenTTL)
	authService := auth.NewService(adminRepo, issuer, recorder)

	clientService := client.NewService(clientRepo)
	supplierService := supplier.NewService(supplierRepo)
	modelService := phonemodel.NewService(modelRepo)

	inventoryService := inventory.NewService(inventoryRepo, converter)
	ledgerService := ledger.NewService(
		ledgerRepo, txManager, converter,
		clientRepo, supplierRepo, modelRepo,
		inventoryService, recorder,
	)
	intakeService := stockintake.NewService(
		lotRepo, txManager, converter,
		supplierRepo, inventoryService, ledgerService, recorder,
	)
	saleService := sale.NewService(
		saleRepo, txManager,
		clientRepo, modelRepo,
		inventoryService, ledgerService, recorder,
	)
	reportService := reports.NewService(reportRepo, converter)

	// --- Bootstrap admin ---
	adminUsername := getEnv("ADMIN_USERNAME", "admin")
	adminPassword := mustEnv("ADMIN_PASSWORD")
	if err := authService.EnsureAdmin(ctx, adminUsername, adminPassword); err != nil {
		log.Fatalw("failed to bootstrap admin", "error", err)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:              pool,
		Logger:            log,
		JWTValidator:      v1.NewTokenValidator(authService),
		AuthService:       authService,
		ClientService:     clientService,
		SupplierService:   supplierService,
		PhoneModelService: modelService,
		IntakeService:     intakeService,
		SaleService:       saleService,
		LedgerService:     ledgerService,
		ReportService:     reportService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
