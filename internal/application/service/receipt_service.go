package service

import (
	"context"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/shopspring/decimal"
)

const (
	titleShortInvoice = "RECEIPT / ABB TAX INV"
	titleFullInvoice  = "FULL TAX INVOICE"
	receiptDateLayout = "02/01/2006 15:04"
)

// ReceiptService composes receipts from a transaction and the current settings
type ReceiptService struct {
	uow repository.UnitOfWork
	loc *time.Location
}

// NewReceiptService creates a new receipt service
func NewReceiptService(uow repository.UnitOfWork, loc *time.Location) *ReceiptService {
	if loc == nil {
		loc = time.Local
	}
	return &ReceiptService{uow: uow, loc: loc}
}

// BuildReceipt renders the transaction for display or printing. A full tax
// invoice also carries the attached customer snapshot.
func (s *ReceiptService) BuildReceipt(ctx context.Context, transactionID string, fullTaxInvoice bool) (*entity.Receipt, error) {
	var (
		tx       *entity.Transaction
		settings *entity.Settings
	)
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		if tx, err = repos.Transactions.GetByID(ctx, transactionID); err != nil {
			return err
		}
		settings, err = repos.Settings.Get(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.CompanyName,
			Address:   settings.Address,
			Phone:     settings.Phone,
			TaxID:     settings.TaxID,
		},
		Title:       titleShortInvoice,
		ReceiptNo:   tx.ReceiptNo,
		Date:        tx.DateTime.In(s.loc).Format(receiptDateLayout),
		TaxInvoice:  fullTaxInvoice,
		Voided:      tx.IsVoided(),
		PaymentType: tx.PaymentMethod.String(),
		Status:      tx.Status.String(),
		Items:       make([]entity.ReceiptItem, 0, len(tx.Items)),
		SubTotal:    money(tx.TotalAmount),
		Discount:    money(tx.Discount),
		VATRate:     tx.VatRate.String(),
		VATBase:     money(tx.NetAmount.Sub(tx.VatAmount)),
		VAT:         money(tx.VatAmount),
		Total:       money(tx.NetAmount),
		Note:        tx.Note,
		Footer:      settings.FooterMessage,
	}
	if fullTaxInvoice {
		receipt.Title = titleFullInvoice
		if tx.CustomerSnapshot != nil {
			receipt.Customer = tx.CustomerSnapshot.Snapshot()
		}
	}
	if receipt.Voided {
		receipt.Title = "(VOIDED) " + receipt.Title
	}

	for _, item := range tx.Items {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: money(item.PricePerUnit),
			Total:     money(item.TotalLineItem),
			VatType:   item.VatType.String(),
		})
	}
	return receipt, nil
}

// money formats an amount for display, clamping negatives to zero
func money(d decimal.Decimal) string {
	if d.IsNegative() {
		d = decimal.Zero
	}
	return d.StringFixed(2)
}
