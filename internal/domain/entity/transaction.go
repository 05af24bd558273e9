package entity

import (
	"errors"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// LineItem is one product entry of a transaction. Name, price and VAT
// classification are snapshots taken at sale time.
type LineItem struct {
	ID            string          `json:"id" validate:"required"`
	TransactionID string          `json:"transactionId" validate:"required"`
	ProductID     string          `json:"productId" validate:"required"`
	ProductName   string          `json:"productName"`
	Quantity      int             `json:"quantity" validate:"gt=0"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit" validate:"gte=0"`
	TotalLineItem decimal.Decimal `json:"totalLineItem" validate:"gte=0"`
	VatType       enum.VatType    `json:"vatType" validate:"enum"`
}

// Transaction is a persisted sale
type Transaction struct {
	ID               string                 `json:"id" validate:"required"`
	ReceiptNo        string                 `json:"receiptNo" validate:"required"`
	DateTime         time.Time              `json:"dateTime"`
	CustomerID       *string                `json:"customerId"`
	CustomerSnapshot *Customer              `json:"customerSnapshot,omitempty"`
	TotalAmount      decimal.Decimal        `json:"totalAmount" validate:"gte=0"`
	Discount         decimal.Decimal        `json:"discount" validate:"gte=0"`
	VatAmount        decimal.Decimal        `json:"vatAmount" validate:"gte=0"`
	NetAmount        decimal.Decimal        `json:"netAmount"`
	VatRate          decimal.Decimal        `json:"vatRate" validate:"gte=0,lte=100"`
	PaymentMethod    enum.PaymentMethod     `json:"paymentMethod" validate:"enum"`
	Status           enum.TransactionStatus `json:"status" validate:"enum"`
	Note             string                 `json:"note"`
	Items            []LineItem             `json:"items" validate:"required,min=1,dive"`
}

// IsVoided reports whether the transaction reached its terminal state
func (t *Transaction) IsVoided() bool {
	return t.Status == enum.TransactionStatusVoided
}

// CheckInvariants covers the rules struct tags cannot express
func (t *Transaction) CheckInvariants() error {
	if t.DateTime.IsZero() {
		return errors.New("dateTime is required")
	}
	if t.Discount.GreaterThan(t.TotalAmount) {
		return errors.New("discount exceeds totalAmount")
	}
	return nil
}

// Clone returns a deep copy
func (t Transaction) Clone() Transaction {
	cp := t
	if t.CustomerID != nil {
		id := *t.CustomerID
		cp.CustomerID = &id
	}
	if t.CustomerSnapshot != nil {
		cp.CustomerSnapshot = t.CustomerSnapshot.Snapshot()
	}
	cp.Items = make([]LineItem, len(t.Items))
	copy(cp.Items, t.Items)
	return cp
}
