package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// TransactionRepository defines the interface for the transaction ledger document
type TransactionRepository interface {
	// List returns transactions most recent first
	List(ctx context.Context) ([]entity.Transaction, error)
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// Prepend adds a new transaction at the head of the ledger
	Prepend(ctx context.Context, transaction *entity.Transaction) error
	// Update replaces an existing transaction in place
	Update(ctx context.Context, transaction *entity.Transaction) error
}
