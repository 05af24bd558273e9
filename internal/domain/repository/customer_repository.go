package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	List(ctx context.Context) ([]entity.Customer, error)
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	Upsert(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) (bool, error)
}
