// Package main is the entry point for the tillpoint API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tillpoint/internal/config"
	"tillpoint/internal/domain/auth"
	"tillpoint/internal/domain/catalogs/product"
	"tillpoint/internal/domain/documents/bill"
	"tillpoint/internal/domain/registers/stock"
	"tillpoint/internal/domain/reports"
	v1 "tillpoint/internal/infrastructure/http/v1"
	"tillpoint/internal/infrastructure/receipt"
	"tillpoint/internal/infrastructure/storage/postgres"
	"tillpoint/internal/infrastructure/storage/postgres/auth_repo"
	"tillpoint/internal/infrastructure/storage/postgres/catalog_repo"
	"tillpoint/internal/infrastructure/storage/postgres/document_repo"
	"tillpoint/internal/infrastructure/storage/postgres/register_repo"
	"tillpoint/internal/infrastructure/storage/postgres/report_repo"
	"tillpoint/pkg/billnum"
	"tillpoint/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting tillpoint server")

	// --- Database ---
	poolCfg := postgres.DefaultPoolConfig(cfg.PGDSN)
	poolCfg.MaxConns = cfg.PGMaxConns
	poolCfg.MinConns = cfg.PGMinConns

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Repositories ---
	productRepo := catalog_repo.NewProductRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	incomeRepo := register_repo.NewIncomeRepo(txManager)
	billRepo := document_repo.NewBillRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)

	auditService, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Receipt rendering ---
	htmlRenderer := receipt.NewHTMLRenderer(cfg.StoreName)
	var renderer bill.Renderer = htmlRenderer
	if cfg.GotenbergURL != "" {
		gotenberg := receipt.NewGotenbergClient(cfg.GotenbergURL)
		if err := gotenberg.Ping(ctx); err != nil {
			log.Warnw("gotenberg unreachable, receipts stay HTML", "error", err)
		} else {
			renderer = receipt.NewPDFRenderer(htmlRenderer, gotenberg)
			log.Info("gotenberg PDF rendering enabled")
		}
	}

	// --- Services ---
	jwtService := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.JWTTTL,
		Issuer: cfg.JWTIssuer,
	})
	authService := auth.NewService(userRepo, jwtService)
	productService := product.NewService(productRepo, auditService)
	stockLedger := stock.NewLedger(stockRepo)
	billService := bill.NewService(
		billRepo,
		stockLedger,
		incomeRepo,
		billnum.New(billnum.DefaultPrefix),
		renderer,
		txManager,
	)
	reportsService := reports.NewService(reportRepo, incomeRepo, productRepo, txManager)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:           pool,
		Logger:         log,
		JWTValidator:   jwtService,
		AuthService:    authService,
		ProductService: productService,
		BillService:    billService,
		ReportsService: reportsService,
		AuditService:   auditService,
		Development:    !cfg.IsProduction(),
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
