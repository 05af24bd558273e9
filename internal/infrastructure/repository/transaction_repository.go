package repository

import (
	"context"
	"errors"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/pricing"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
)

var errTotalsMismatch = errors.New("stored totals differ from a recomputation of the line items")

// totalsMatch rejects a transaction whose subtotal, VAT or net amount does
// not follow from its own line items, discount and VAT rate.
func totalsMatch(tx *entity.Transaction) error {
	if !pricing.Matches(tx) {
		return errTotalsMismatch
	}
	return nil
}

type transactionRepository struct {
	kv domainRepo.KeyValueReadWriter
}

// NewTransactionRepository creates a repository over the pos_transactions document
func NewTransactionRepository(kv domainRepo.KeyValueReadWriter) domainRepo.TransactionRepository {
	return &transactionRepository{kv: kv}
}

func (r *transactionRepository) List(ctx context.Context) ([]entity.Transaction, error) {
	transactions, _, err := readCollection[entity.Transaction](ctx, r.kv, domainRepo.KeyTransactions, totalsMatch)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []entity.Transaction{}
	}
	return transactions, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	transactions, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if transactions[i].ID == id {
			return &transactions[i], nil
		}
	}
	return nil, nil
}

func (r *transactionRepository) Prepend(ctx context.Context, transaction *entity.Transaction) error {
	transactions, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range transactions {
		if transactions[i].ID == transaction.ID {
			return apperror.NewConflictError("Transaction " + transaction.ID + " already exists")
		}
	}

	ledger := make([]entity.Transaction, 0, len(transactions)+1)
	ledger = append(ledger, transaction.Clone())
	ledger = append(ledger, transactions...)
	return writeCollection(ctx, r.kv, domainRepo.KeyTransactions, ledger, totalsMatch)
}

func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactions, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range transactions {
		if transactions[i].ID == transaction.ID {
			transactions[i] = transaction.Clone()
			return writeCollection(ctx, r.kv, domainRepo.KeyTransactions, transactions, totalsMatch)
		}
	}
	return apperror.NewNotFoundError("Transaction")
}
