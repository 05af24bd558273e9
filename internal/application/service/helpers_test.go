package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	infraRepo "github.com/sangkips/pos-ledger/internal/infrastructure/repository"
	"github.com/sangkips/pos-ledger/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fake time and moves it forward one minute
func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Minute)
	return t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testEnv struct {
	store     domainRepo.KeyValueStore
	clock     *fakeClock
	ledger    *LedgerService
	catalog   *CatalogService
	customers *CustomerService
	settings  *SettingsService
	dashboard *DashboardService
	receipts  *ReceiptService
}

var day1 = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithStore(t, storage.NewMemoryStore())
}

func newTestEnvWithStore(t *testing.T, store domainRepo.KeyValueStore) *testEnv {
	return newTestEnvWithDefaults(t, store, entity.DefaultSettings())
}

func newTestEnvWithDefaults(t *testing.T, store domainRepo.KeyValueStore, defaults entity.Settings) *testEnv {
	t.Helper()
	log := zaptest.NewLogger(t)
	uow := infraRepo.NewUnitOfWork(store, defaults, log)
	clock := &fakeClock{now: day1}

	return &testEnv{
		store:     store,
		clock:     clock,
		ledger:    NewLedgerService(uow, log, WithClock(clock.Now), WithLocation(time.UTC)),
		catalog:   NewCatalogService(uow, log),
		customers: NewCustomerService(uow, log),
		settings:  NewSettingsService(uow, log),
		dashboard: NewDashboardService(uow, time.UTC),
		receipts:  NewReceiptService(uow, time.UTC),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (e *testEnv) product(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := e.catalog.GetProduct(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (e *testEnv) stock(t *testing.T) map[string]int {
	t.Helper()
	products, err := e.catalog.ListProducts(context.Background())
	require.NoError(t, err)
	levels := make(map[string]int, len(products))
	for _, p := range products {
		levels[p.ID] = p.StockQuantity
	}
	return levels
}

// cart buys quantities of seed products keyed by product id
func (e *testEnv) cart(t *testing.T, quantities map[string]int, order ...string) []SaleItemInput {
	t.Helper()
	items := make([]SaleItemInput, 0, len(order))
	for _, id := range order {
		items = append(items, CartItemFromProduct(e.product(t, id), quantities[id]))
	}
	return items
}

func (e *testEnv) sell(t *testing.T, items []SaleItemInput, discount string) *entity.Transaction {
	t.Helper()
	tx, err := e.ledger.RecordSale(context.Background(), &RecordSaleInput{
		Items:         items,
		Discount:      dec(discount),
		PaymentMethod: enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	return tx
}

type failingStore struct {
	*storage.MemoryStore
	fail bool
}

func (s *failingStore) WriteBatch(ctx context.Context, entries []domainRepo.KeyValue) error {
	if s.fail {
		return context.DeadlineExceeded
	}
	return s.MemoryStore.WriteBatch(ctx, entries)
}
