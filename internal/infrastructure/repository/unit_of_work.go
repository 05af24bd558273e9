package repository

import (
	"context"
	"sync"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"go.uber.org/zap"
)

// stagedTx buffers writes over a store. Reads see the buffered value first.
type stagedTx struct {
	store  domainRepo.KeyValueReader
	writes map[string][]byte
	order  []string
}

func newStagedTx(store domainRepo.KeyValueReader) *stagedTx {
	return &stagedTx{store: store, writes: make(map[string][]byte)}
}

func (t *stagedTx) Read(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := t.writes[key]; ok {
		return v, true, nil
	}
	return t.store.Read(ctx, key)
}

func (t *stagedTx) Write(_ context.Context, key string, value []byte) error {
	if _, ok := t.writes[key]; !ok {
		t.order = append(t.order, key)
	}
	t.writes[key] = value
	return nil
}

func (t *stagedTx) entries() []domainRepo.KeyValue {
	entries := make([]domainRepo.KeyValue, 0, len(t.order))
	for _, k := range t.order {
		entries = append(entries, domainRepo.KeyValue{Key: k, Value: t.writes[k]})
	}
	return entries
}

type unitOfWork struct {
	mu       sync.Mutex
	store    domainRepo.KeyValueStore
	defaults entity.Settings
	log      *zap.Logger
}

// NewUnitOfWork serializes every read-modify-write cycle against store
func NewUnitOfWork(store domainRepo.KeyValueStore, defaults entity.Settings, log *zap.Logger) domainRepo.UnitOfWork {
	return &unitOfWork{store: store, defaults: defaults, log: log}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos domainRepo.Repositories) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx := newStagedTx(u.store)
	if err := fn(domainRepo.Repositories{
		Products:     NewProductRepository(tx),
		Transactions: NewTransactionRepository(tx),
		Customers:    NewCustomerRepository(tx),
		Settings:     NewSettingsRepository(tx, u.defaults),
	}); err != nil {
		return err
	}

	entries := tx.entries()
	if len(entries) == 0 {
		return nil
	}
	if err := u.store.WriteBatch(ctx, entries); err != nil {
		u.log.Error("commit failed", zap.Strings("keys", tx.order), zap.Error(err))
		return apperror.NewStorageError("commit", err)
	}
	u.log.Debug("committed", zap.Strings("keys", tx.order))
	return nil
}
