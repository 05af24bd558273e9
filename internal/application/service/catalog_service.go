package service

import (
	"context"
	"strings"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"github.com/sangkips/pos-ledger/pkg/validator"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService handles product-related operations
type CatalogService struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(uow repository.UnitOfWork, log *zap.Logger) *CatalogService {
	return &CatalogService{uow: uow, log: log}
}

// SaveProductInput represents the create/update product input. An empty ID creates a product.
type SaveProductInput struct {
	ID            string
	Barcode       string
	Name          string
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	StockQuantity int
	VatType       enum.VatType
	IsActive      bool
	ImageURL      *string
}

// SaveProduct inserts or replaces a product. Barcodes are unique across the catalog.
func (s *CatalogService) SaveProduct(ctx context.Context, input *SaveProductInput) (*entity.Product, error) {
	product := entity.Product{
		ID:            input.ID,
		Barcode:       strings.TrimSpace(input.Barcode),
		Name:          strings.TrimSpace(input.Name),
		CostPrice:     input.CostPrice,
		SellingPrice:  input.SellingPrice,
		StockQuantity: input.StockQuantity,
		VatType:       input.VatType,
		IsActive:      input.IsActive,
		ImageURL:      input.ImageURL,
	}
	if product.ID == "" {
		product.ID = utils.NewID()
	}
	if err := validator.Validate(&product); err != nil {
		return nil, err
	}
	if product.CostPrice.IsNegative() {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "Product.costPrice", Message: "failed on 'gte=0'"}})
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Products.GetByBarcode(ctx, product.Barcode)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != product.ID {
			return apperror.NewConflictError("Barcode " + product.Barcode + " is already used by " + existing.Name)
		}
		return repos.Products.Upsert(ctx, &product)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product saved", zap.String("product_id", product.ID), zap.String("barcode", product.Barcode))
	return &product, nil
}

// DeleteProduct removes a product. Past transactions keep their line item snapshots.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		removed, err := repos.Products.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			return apperror.NewNotFoundError("Product")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Info("product deleted", zap.String("product_id", id))
	return nil
}

// ListProducts returns the catalog in stored order
func (s *CatalogService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		products, err = repos.Products.List(ctx)
		return err
	})
	return products, err
}

// GetProduct retrieves a product by ID
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return s.find(ctx, func(repos repository.Repositories) (*entity.Product, error) {
		return repos.Products.GetByID(ctx, id)
	})
}

// FindByBarcode is the scanner lookup
func (s *CatalogService) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	barcode = strings.TrimSpace(barcode)
	return s.find(ctx, func(repos repository.Repositories) (*entity.Product, error) {
		return repos.Products.GetByBarcode(ctx, barcode)
	})
}

func (s *CatalogService) find(ctx context.Context, get func(repository.Repositories) (*entity.Product, error)) (*entity.Product, error) {
	var product *entity.Product
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		product, err = get(repos)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// LowStock lists active products with stock at or below threshold
func (s *CatalogService) LowStock(ctx context.Context, threshold int) ([]entity.Product, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]entity.Product, 0)
	for _, p := range products {
		if p.IsActive && p.StockQuantity <= threshold {
			low = append(low, p)
		}
	}
	return low, nil
}
