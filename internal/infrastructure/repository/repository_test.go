package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/internal/domain/pricing"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/internal/infrastructure/storage"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func sampleTransaction(id string) *entity.Transaction {
	tx := &entity.Transaction{
		ID:            id,
		ReceiptNo:     "INV-20261019-0001",
		DateTime:      time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC),
		Discount:      decimal.Zero,
		VatRate:       decimal.NewFromInt(7),
		PaymentMethod: enum.PaymentMethodCash,
		Status:        enum.TransactionStatusCompleted,
		Items: []entity.LineItem{{
			ID: "li-1", TransactionID: id, ProductID: "1", ProductName: "Espresso",
			Quantity: 1, PricePerUnit: decimal.NewFromInt(60), TotalLineItem: decimal.NewFromInt(60),
			VatType: enum.VatTypeIncluded,
		}},
	}
	totals := pricing.Recompute(tx)
	tx.TotalAmount, tx.VatAmount, tx.NetAmount = totals.Subtotal, totals.VatAmount, totals.NetAmount
	return tx
}

func TestProductRepositorySeedsDefaults(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewProductRepository(store)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 4)

	_, ok, _ := store.Read(ctx, domainRepo.KeyProducts)
	assert.False(t, ok, "reading must not persist the seed")

	p, err := repo.GetByBarcode(ctx, "88500003")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Croissant", p.Name)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestProductRepositoryUpsertKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(storage.NewMemoryStore())

	p, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	p.Name = "Matcha Latte"
	require.NoError(t, repo.Upsert(ctx, p))

	added := &entity.Product{ID: "5", Barcode: "88500005", Name: "Bagel", SellingPrice: decimal.NewFromInt(40), VatType: enum.VatTypeNone}
	require.NoError(t, repo.Upsert(ctx, added))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "Matcha Latte", products[1].Name)
	assert.Equal(t, "5", products[4].ID)
}

func TestProductRepositoryDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(storage.NewMemoryStore())

	removed, err := repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, "1")
	require.NoError(t, err)
	assert.False(t, removed)

	products, _ := repo.List(ctx)
	assert.Len(t, products, 3)
}

func TestProductRepositoryDeleteAllLeavesEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(storage.NewMemoryStore())
	for _, id := range []string{"1", "2", "3", "4"} {
		_, err := repo.Delete(ctx, id)
		require.NoError(t, err)
	}
	products, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepositoryApplyStockDelta(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(storage.NewMemoryStore())
	items := []entity.LineItem{
		{ProductID: "1", Quantity: 3},
		{ProductID: "ghost", Quantity: 5},
		{ProductID: "3", Quantity: 25},
	}

	require.NoError(t, repo.ApplyStockDelta(ctx, items, enum.StockDeduct))
	espresso, _ := repo.GetByID(ctx, "1")
	croissant, _ := repo.GetByID(ctx, "3")
	assert.Equal(t, 97, espresso.StockQuantity)
	assert.Equal(t, -5, croissant.StockQuantity)

	require.NoError(t, repo.ApplyStockDelta(ctx, items, enum.StockRestore))
	espresso, _ = repo.GetByID(ctx, "1")
	croissant, _ = repo.GetByID(ctx, "3")
	assert.Equal(t, 100, espresso.StockQuantity)
	assert.Equal(t, 20, croissant.StockQuantity)
}

func TestReadCollectionRejectsBadDocuments(t *testing.T) {
	ctx := context.Background()

	cases := map[string]string{
		"malformed":      `[{"id":`,
		"unknown enum":   `[{"id":"1","barcode":"b","name":"n","sellingPrice":1,"vatType":"Zero"}]`,
		"missing name":   `[{"id":"1","barcode":"b","sellingPrice":1,"vatType":"None"}]`,
		"negative price": `[{"id":"1","barcode":"b","name":"n","sellingPrice":-1,"vatType":"None"}]`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			require.NoError(t, store.Write(ctx, domainRepo.KeyProducts, []byte(doc)))

			_, err := NewProductRepository(store).List(ctx)
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindDecode), err.Error())
		})
	}
}

func TestTransactionRepositoryRejectsBrokenInvariants(t *testing.T) {
	ctx := context.Background()

	cases := map[string]func(tx *entity.Transaction){
		"discount over gross": func(tx *entity.Transaction) { tx.Discount = decimal.NewFromInt(61) },
		"vat rate over 100":   func(tx *entity.Transaction) { tx.VatRate = decimal.NewFromInt(150) },
		"tampered net":        func(tx *entity.Transaction) { tx.NetAmount = tx.NetAmount.Sub(decimal.NewFromInt(1)) },
		"tampered vat":        func(tx *entity.Transaction) { tx.VatAmount = decimal.Zero },
	}
	for name, breakIt := range cases {
		t.Run(name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			repo := NewTransactionRepository(store)
			require.NoError(t, repo.Prepend(ctx, sampleTransaction("good")))

			tx := sampleTransaction("t1")
			breakIt(tx)

			err := repo.Prepend(ctx, tx)
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput), "%v", err)

			good, err := repo.GetByID(ctx, "good")
			require.NoError(t, err)
			breakIt(good)
			err = repo.Update(ctx, good)
			assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput), "%v", err)

			list, err := repo.List(ctx)
			require.NoError(t, err, "rejected writes must leave the ledger readable")
			require.Len(t, list, 1)
			assert.True(t, pricing.Matches(&list[0]))

			// a record written behind the repository's back fails on read
			raw, err := json.Marshal([]*entity.Transaction{tx})
			require.NoError(t, err)
			require.NoError(t, store.Write(ctx, domainRepo.KeyTransactions, raw))

			_, err = repo.List(ctx)
			assert.True(t, apperror.IsKind(err, apperror.KindDecode), "%v", err)
		})
	}
}

func TestSettingsRepositoryRejectsInvalidSave(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	repo := NewSettingsRepository(store, entity.DefaultSettings())

	settings := entity.DefaultSettings()
	settings.VatRate = decimal.NewFromInt(-7)
	err := repo.Save(ctx, &settings)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidInput), "%v", err)

	_, ok, _ := store.Read(ctx, domainRepo.KeySettings)
	assert.False(t, ok)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(7).Equal(got.VatRate))
}

func TestTransactionRepositoryPrependAndUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(storage.NewMemoryStore())

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.Prepend(ctx, sampleTransaction("t1")))
	require.NoError(t, repo.Prepend(ctx, sampleTransaction("t2")))

	err = repo.Prepend(ctx, sampleTransaction("t1"))
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t2", list[0].ID)

	t1, err := repo.GetByID(ctx, "t1")
	require.NoError(t, err)
	t1.Status = enum.TransactionStatusVoided
	require.NoError(t, repo.Update(ctx, t1))

	t1, _ = repo.GetByID(ctx, "t1")
	assert.True(t, t1.IsVoided())

	err = repo.Update(ctx, sampleTransaction("t3"))
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestCustomerRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository(storage.NewMemoryStore())

	c := &entity.Customer{ID: "c1", Name: "Acme", TaxID: "0105", Branch: "Head Office"}
	require.NoError(t, repo.Upsert(ctx, c))
	c.Name = "Acme Ltd"
	require.NoError(t, repo.Upsert(ctx, c))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme Ltd", list[0].Name)

	removed, err := repo.Delete(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, removed)

	got, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSettingsRepositoryDefaults(t *testing.T) {
	ctx := context.Background()
	defaults := entity.DefaultSettings()
	repo := NewSettingsRepository(storage.NewMemoryStore(), defaults)

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, defaults.CompanyName, s.CompanyName)
	assert.True(t, s.VatRate.Equal(decimal.NewFromInt(7)))

	s.VatRate = decimal.NewFromInt(10)
	require.NoError(t, repo.Save(ctx, s))

	s, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "10", s.VatRate.String())
}

type failingStore struct {
	*storage.MemoryStore
	err error
}

func (s *failingStore) WriteBatch(ctx context.Context, entries []domainRepo.KeyValue) error {
	return s.err
}

func TestUnitOfWorkCommitsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	uow := NewUnitOfWork(store, entity.DefaultSettings(), zaptest.NewLogger(t))

	boom := errors.New("boom")
	err := uow.Do(ctx, func(repos domainRepo.Repositories) error {
		require.NoError(t, repos.Transactions.Prepend(ctx, sampleTransaction("t1")))
		require.NoError(t, repos.Products.ApplyStockDelta(ctx, sampleTransaction("t1").Items, enum.StockDeduct))

		// staged writes are visible inside the unit
		got, err := repos.Transactions.GetByID(ctx, "t1")
		require.NoError(t, err)
		require.NotNil(t, got)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, ok, _ := store.Read(ctx, domainRepo.KeyTransactions)
	assert.False(t, ok)
	_, ok, _ = store.Read(ctx, domainRepo.KeyProducts)
	assert.False(t, ok)

	err = uow.Do(ctx, func(repos domainRepo.Repositories) error {
		if err := repos.Transactions.Prepend(ctx, sampleTransaction("t1")); err != nil {
			return err
		}
		return repos.Products.ApplyStockDelta(ctx, sampleTransaction("t1").Items, enum.StockDeduct)
	})
	require.NoError(t, err)

	_, ok, _ = store.Read(ctx, domainRepo.KeyTransactions)
	assert.True(t, ok)
	espresso, _ := NewProductRepository(store).GetByID(ctx, "1")
	assert.Equal(t, 99, espresso.StockQuantity)
}

func TestUnitOfWorkCommitFailure(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{MemoryStore: storage.NewMemoryStore(), err: errors.New("disk full")}
	uow := NewUnitOfWork(store, entity.DefaultSettings(), zaptest.NewLogger(t))

	err := uow.Do(ctx, func(repos domainRepo.Repositories) error {
		return repos.Transactions.Prepend(ctx, sampleTransaction("t1"))
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindStorage))

	_, ok, _ := store.Read(ctx, domainRepo.KeyTransactions)
	assert.False(t, ok)
}

func TestUnitOfWorkSerializesWriters(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	uow := NewUnitOfWork(store, entity.DefaultSettings(), zaptest.NewLogger(t))

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := uow.Do(ctx, func(repos domainRepo.Repositories) error {
				return repos.Products.ApplyStockDelta(ctx, []entity.LineItem{{ProductID: "4", Quantity: 1}}, enum.StockDeduct)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	water, err := NewProductRepository(store).GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, 200-workers, water.StockQuantity)
}
