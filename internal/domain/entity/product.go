package entity

import (
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Product represents a sellable catalog item
type Product struct {
	ID            string          `json:"id" validate:"required"`
	Barcode       string          `json:"barcode" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" validate:"gte=0"`
	StockQuantity int             `json:"stockQuantity"`
	VatType       enum.VatType    `json:"vatType" validate:"enum"`
	IsActive      bool            `json:"isActive"`
	ImageURL      *string         `json:"imageUrl,omitempty"`
}

// Clone returns a copy that shares no pointers with p
func (p Product) Clone() Product {
	cp := p
	if p.ImageURL != nil {
		url := *p.ImageURL
		cp.ImageURL = &url
	}
	return cp
}

// DefaultProducts is the catalog served before anything has been saved
func DefaultProducts() []Product {
	image := func(s string) *string { return &s }
	return []Product{
		{ID: "1", Barcode: "88500001", Name: "Espresso", CostPrice: decimal.NewFromInt(40), SellingPrice: decimal.NewFromInt(60), StockQuantity: 100, VatType: enum.VatTypeIncluded, IsActive: true, ImageURL: image("https://images.unsplash.com/photo-1510591509098-f40962d438a7?auto=format&fit=crop&w=300&q=80")},
		{ID: "2", Barcode: "88500002", Name: "Green Tea Latte", CostPrice: decimal.NewFromInt(45), SellingPrice: decimal.NewFromInt(70), StockQuantity: 50, VatType: enum.VatTypeIncluded, IsActive: true, ImageURL: image("https://images.unsplash.com/photo-1576092768241-dec231847233?auto=format&fit=crop&w=300&q=80")},
		{ID: "3", Barcode: "88500003", Name: "Croissant", CostPrice: decimal.NewFromInt(20), SellingPrice: decimal.NewFromInt(85), StockQuantity: 20, VatType: enum.VatTypeExcluded, IsActive: true, ImageURL: image("https://images.unsplash.com/photo-1555507036-ab1f4038808a?auto=format&fit=crop&w=300&q=80")},
		{ID: "4", Barcode: "88500004", Name: "Water", CostPrice: decimal.NewFromInt(5), SellingPrice: decimal.NewFromInt(15), StockQuantity: 200, VatType: enum.VatTypeNone, IsActive: true, ImageURL: image("https://images.unsplash.com/photo-1564419320461-6870880221ad?auto=format&fit=crop&w=300&q=80")},
	}
}
