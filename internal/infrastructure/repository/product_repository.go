package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
)

type productRepository struct {
	kv domainRepo.KeyValueReadWriter
}

// NewProductRepository creates a product repository over the pos_products document
func NewProductRepository(kv domainRepo.KeyValueReadWriter) domainRepo.ProductRepository {
	return &productRepository{kv: kv}
}

// List serves the seed catalog until the document has been written once
func (r *productRepository) List(ctx context.Context) ([]entity.Product, error) {
	products, found, err := readCollection[entity.Product](ctx, r.kv, domainRepo.KeyProducts)
	if err != nil {
		return nil, err
	}
	if !found {
		return entity.DefaultProducts(), nil
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.find(ctx, func(p *entity.Product) bool { return p.ID == id })
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.find(ctx, func(p *entity.Product) bool { return p.Barcode == barcode })
}

func (r *productRepository) find(ctx context.Context, match func(p *entity.Product) bool) (*entity.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if match(&products[i]) {
			return &products[i], nil
		}
	}
	return nil, nil
}

func (r *productRepository) Upsert(ctx context.Context, product *entity.Product) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = product.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product.Clone())
	}
	return writeCollection(ctx, r.kv, domainRepo.KeyProducts, products)
}

func (r *productRepository) Delete(ctx context.Context, id string) (bool, error) {
	products, err := r.List(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return false, nil
	}
	return true, writeCollection(ctx, r.kv, domainRepo.KeyProducts, kept)
}

func (r *productRepository) ApplyStockDelta(ctx context.Context, items []entity.LineItem, direction enum.StockDirection) error {
	products, err := r.List(ctx)
	if err != nil {
		return err
	}

	index := make(map[string]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	sign := direction.Sign()
	for _, item := range items {
		i, ok := index[item.ProductID]
		if !ok {
			continue
		}
		products[i].StockQuantity += sign * item.Quantity
	}
	return writeCollection(ctx, r.kv, domainRepo.KeyProducts, products)
}
