package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
)

// ProductRepository defines the interface for product catalog operations
type ProductRepository interface {
	List(ctx context.Context) ([]entity.Product, error)
	// GetByID returns nil, nil when the product does not exist
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Upsert appends unseen ids and replaces existing ones in place
	Upsert(ctx context.Context, product *entity.Product) error
	// Delete reports whether a product was removed
	Delete(ctx context.Context, id string) (bool, error)
	// ApplyStockDelta adds or subtracts each item's quantity. Unknown product ids are skipped.
	ApplyStockDelta(ctx context.Context, items []entity.LineItem, direction enum.StockDirection) error
}
