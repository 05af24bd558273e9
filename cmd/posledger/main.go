package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sangkips/pos-ledger/internal/application/service"
	"github.com/sangkips/pos-ledger/internal/config"
	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/infrastructure/repository"
	"github.com/sangkips/pos-ledger/internal/infrastructure/storage"
	"github.com/sangkips/pos-ledger/pkg/logger"
	"go.uber.org/zap"
)

const lowStockThreshold = 10

var openStore = storage.Open

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("posledger: %v", err)
	}
}

// run returns instead of exiting so the store is closed and the logger
// flushed on every path.
func run(ctx context.Context) (err error) {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zapLog, err := logger.New(&cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer zapLog.Sync()
	zapLog = zapLog.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))
	defer func() {
		if err != nil {
			zapLog.Error("posledger stopped", zap.Error(err))
		}
	}()

	loc, err := cfg.Ledger.Location()
	if err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}

	// Open the document store
	store, err := openStore(ctx, cfg, zapLog)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			zapLog.Warn("failed to close store", zap.Error(err))
		}
	}()

	defaults := entity.DefaultSettings()
	defaults.VatRate = cfg.Ledger.DefaultVatRate
	uow := repository.NewUnitOfWork(store, defaults, zapLog)

	// Initialize services
	catalogService := service.NewCatalogService(uow, zapLog)
	settingsService := service.NewSettingsService(uow, zapLog)
	ledgerService := service.NewLedgerService(uow, zapLog, service.WithLocation(loc))
	dashboardService := service.NewDashboardService(uow, loc)
	customerService := service.NewCustomerService(uow, zapLog)

	settings, err := settingsService.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	products, err := catalogService.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	customers, err := customerService.ListCustomers(ctx)
	if err != nil {
		return fmt.Errorf("failed to read customers: %w", err)
	}
	recent, err := ledgerService.ListTransactions(ctx, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	zapLog.Info("ledger ready",
		zap.String("company", settings.CompanyName),
		zap.String("vat_rate", settings.VatRate.String()),
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
		zap.Int64("transactions", recent.Pagination.Total),
	)

	today := time.Now().In(loc)
	summary, err := dashboardService.Summary(ctx, today, today)
	if err != nil {
		return fmt.Errorf("failed to build dashboard summary: %w", err)
	}
	zapLog.Info("today",
		zap.String("date", summary.From),
		zap.String("total_sales", summary.TotalSales.StringFixed(2)),
		zap.Int("sales", summary.TransactionCount),
		zap.String("average_sale", summary.AverageSale.StringFixed(2)),
		zap.Int("voided", summary.VoidCount),
	)

	low, err := catalogService.LowStock(ctx, lowStockThreshold)
	if err != nil {
		return fmt.Errorf("failed to list low stock: %w", err)
	}
	for _, p := range low {
		zapLog.Warn("low stock",
			zap.String("product_id", p.ID),
			zap.String("name", p.Name),
			zap.Int("stock", p.StockQuantity),
		)
	}
	return nil
}
