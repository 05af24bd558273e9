package service

import (
	"context"
	"time"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/enum"
	"github.com/sangkips/pos-ledger/internal/domain/numbering"
	"github.com/sangkips/pos-ledger/internal/domain/pricing"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/pagination"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"github.com/sangkips/pos-ledger/pkg/validator"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService records, voids and annotates sales
type LedgerService struct {
	uow repository.UnitOfWork
	log *zap.Logger
	now func() time.Time
	loc *time.Location
}

// LedgerOption customizes a LedgerService
type LedgerOption func(*LedgerService)

// WithClock replaces time.Now
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) { s.now = now }
}

// WithLocation sets the time zone that decides a receipt number's day
func WithLocation(loc *time.Location) LedgerOption {
	return func(s *LedgerService) { s.loc = loc }
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uow repository.UnitOfWork, log *zap.Logger, opts ...LedgerOption) *LedgerService {
	s := &LedgerService{
		uow: uow,
		log: log,
		now: time.Now,
		loc: time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaleItemInput is one cart line. Name, price and VAT type are the values
// shown at the till and are stored as given.
type SaleItemInput struct {
	ProductID   string          `json:"productId" validate:"required"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"gte=0"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	VatType     enum.VatType    `json:"vatType" validate:"enum"`
}

// CartItemFromProduct snapshots a catalog product into a cart line
func CartItemFromProduct(p *entity.Product, quantity int) SaleItemInput {
	return SaleItemInput{
		ProductID:   p.ID,
		ProductName: p.Name,
		UnitPrice:   p.SellingPrice,
		Quantity:    quantity,
		VatType:     p.VatType,
	}
}

// RecordSaleInput represents the record sale input
type RecordSaleInput struct {
	// ID is optional. A retried sale with the same ID returns the stored
	// transaction without numbering or deducting stock again.
	ID            string             `json:"id"`
	Items         []SaleItemInput    `json:"items" validate:"dive"`
	Discount      decimal.Decimal    `json:"discount" validate:"gte=0"`
	PaymentMethod enum.PaymentMethod `json:"paymentMethod" validate:"enum"`
	// VatRate overrides the settings rate when set
	VatRate    *decimal.Decimal `json:"vatRate"`
	CustomerID *string          `json:"customerId"`
	Note       string           `json:"note"`
}

func (in *RecordSaleInput) lines() []pricing.Line {
	lines := make([]pricing.Line, len(in.Items))
	for i, item := range in.Items {
		lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity, VatType: item.VatType}
	}
	return lines
}

func (in *RecordSaleInput) validate() error {
	if len(in.Items) == 0 {
		return apperror.ErrEmptyCart
	}
	if err := validator.Validate(in); err != nil {
		return err
	}
	if in.VatRate != nil && (in.VatRate.IsNegative() || in.VatRate.GreaterThan(decimal.NewFromInt(100))) {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "RecordSaleInput.vatRate", Message: "must be between 0 and 100"}})
	}

	gross := decimal.Zero
	for _, item := range in.Items {
		gross = gross.Add(pricing.LineTotal(item.UnitPrice, item.Quantity))
	}
	if in.Discount.GreaterThan(gross) {
		return apperror.NewBadRequestError("Discount exceeds the cart total")
	}
	return nil
}

// RecordSale prices the cart, assigns the next receipt number, deducts stock
// and prepends the transaction, all in one commit.
func (s *LedgerService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Transaction, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	var recorded entity.Transaction
	replayed := false
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		if input.ID != "" {
			existing, err := repos.Transactions.GetByID(ctx, input.ID)
			if err != nil {
				return err
			}
			if existing != nil {
				recorded = existing.Clone()
				replayed = true
				return nil
			}
		}

		vatRate, err := s.vatRate(ctx, repos, input.VatRate)
		if err != nil {
			return err
		}

		var customer *entity.Customer
		if input.CustomerID != nil {
			customer, err = repos.Customers.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}
		}

		ledger, err := repos.Transactions.List(ctx)
		if err != nil {
			return err
		}

		now := s.now()
		tx := s.buildTransaction(input, vatRate, now)
		tx.ReceiptNo = numbering.NextReceiptNo(ledger, now, s.loc)
		if customer != nil {
			tx.CustomerID = &customer.ID
			tx.CustomerSnapshot = customer.Snapshot()
		}
		if err := tx.CheckInvariants(); err != nil {
			return apperror.NewBadRequestError(err.Error())
		}

		if err := repos.Products.ApplyStockDelta(ctx, tx.Items, enum.StockDeduct); err != nil {
			return err
		}
		if err := repos.Transactions.Prepend(ctx, &tx); err != nil {
			return err
		}
		recorded = tx
		return nil
	})
	if err != nil {
		s.log.Warn("record sale failed", zap.Error(err))
		return nil, err
	}

	if replayed {
		s.log.Info("sale already recorded",
			zap.String("transaction_id", recorded.ID),
			zap.String("receipt_no", recorded.ReceiptNo),
		)
	} else {
		s.log.Info("sale recorded",
			zap.String("transaction_id", recorded.ID),
			zap.String("receipt_no", recorded.ReceiptNo),
			zap.String("net_amount", recorded.NetAmount.StringFixed(2)),
			zap.Int("items", len(recorded.Items)),
		)
	}
	return &recorded, nil
}

func (s *LedgerService) vatRate(ctx context.Context, repos repository.Repositories, override *decimal.Decimal) (decimal.Decimal, error) {
	if override != nil {
		return *override, nil
	}
	settings, err := repos.Settings.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return settings.VatRate, nil
}

func (s *LedgerService) buildTransaction(input *RecordSaleInput, vatRate decimal.Decimal, now time.Time) entity.Transaction {
	id := input.ID
	if id == "" {
		id = utils.NewID()
	}

	totals := pricing.Calculate(input.lines(), input.Discount, vatRate)

	items := make([]entity.LineItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.LineItem{
			ID:            utils.NewID(),
			TransactionID: id,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			PricePerUnit:  item.UnitPrice,
			TotalLineItem: totals.Lines[i].LineTotal,
			VatType:       item.VatType,
		}
	}

	return entity.Transaction{
		ID:            id,
		DateTime:      now,
		TotalAmount:   totals.Subtotal,
		Discount:      totals.DiscountApplied,
		VatAmount:     totals.VatAmount,
		NetAmount:     totals.NetAmount,
		VatRate:       vatRate,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.TransactionStatusCompleted,
		Note:          input.Note,
		Items:         items,
	}
}

// Void marks a completed transaction Voided and returns its items to stock.
// A missing transaction yields a not-found error and an already voided one
// ErrAlreadyVoided; neither writes anything.
func (s *LedgerService) Void(ctx context.Context, id string) (*entity.Transaction, error) {
	var voided entity.Transaction
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		tx, err := repos.Transactions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if tx == nil {
			return apperror.NewNotFoundError("Transaction")
		}
		if tx.IsVoided() {
			return apperror.ErrAlreadyVoided
		}

		tx.Status = enum.TransactionStatusVoided
		if err := repos.Products.ApplyStockDelta(ctx, tx.Items, enum.StockRestore); err != nil {
			return err
		}
		if err := repos.Transactions.Update(ctx, tx); err != nil {
			return err
		}
		voided = tx.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("transaction voided",
		zap.String("transaction_id", voided.ID),
		zap.String("receipt_no", voided.ReceiptNo),
	)
	return &voided, nil
}

// AttachCustomer stores a copy of customer on the transaction, replacing any
// earlier one. Totals, status and receipt number are left alone.
func (s *LedgerService) AttachCustomer(ctx context.Context, transactionID string, customer *entity.Customer) (*entity.Transaction, error) {
	if customer == nil {
		return nil, apperror.NewBadRequestError("Customer is required")
	}
	if err := validator.Validate(customer); err != nil {
		return nil, err
	}
	return s.attach(ctx, transactionID, func(repository.Repositories) (*entity.Customer, error) {
		return customer, nil
	})
}

// AttachCustomerByID resolves the customer from the directory first
func (s *LedgerService) AttachCustomerByID(ctx context.Context, transactionID, customerID string) (*entity.Transaction, error) {
	return s.attach(ctx, transactionID, func(repos repository.Repositories) (*entity.Customer, error) {
		customer, err := repos.Customers.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		return customer, nil
	})
}

func (s *LedgerService) attach(ctx context.Context, transactionID string, resolve func(repository.Repositories) (*entity.Customer, error)) (*entity.Transaction, error) {
	var updated entity.Transaction
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		tx, err := repos.Transactions.GetByID(ctx, transactionID)
		if err != nil {
			return err
		}
		if tx == nil {
			return apperror.NewNotFoundError("Transaction")
		}

		customer, err := resolve(repos)
		if err != nil {
			return err
		}

		snapshot := customer.Snapshot()
		id := snapshot.ID
		tx.CustomerID = &id
		tx.CustomerSnapshot = snapshot
		if err := repos.Transactions.Update(ctx, tx); err != nil {
			return err
		}
		updated = tx.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("customer attached",
		zap.String("transaction_id", updated.ID),
		zap.String("customer_id", *updated.CustomerID),
	)
	return &updated, nil
}

// GetTransaction retrieves a transaction by ID
func (s *LedgerService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	var found *entity.Transaction
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		tx, err := repos.Transactions.GetByID(ctx, id)
		found = tx
		return err
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return found, nil
}

// TransactionFilter narrows ListTransactions. Zero values match everything.
type TransactionFilter struct {
	From      *time.Time
	To        *time.Time
	Status    enum.TransactionStatus
	ReceiptNo string
}

func (f *TransactionFilter) match(tx *entity.Transaction) bool {
	if f == nil {
		return true
	}
	if f.From != nil && tx.DateTime.Before(*f.From) {
		return false
	}
	if f.To != nil && tx.DateTime.After(*f.To) {
		return false
	}
	if f.Status != 0 && tx.Status != f.Status {
		return false
	}
	if f.ReceiptNo != "" && tx.ReceiptNo != f.ReceiptNo {
		return false
	}
	return true
}

// ListTransactions returns matching transactions most recent first
func (s *LedgerService) ListTransactions(ctx context.Context, filter *TransactionFilter, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	var all []entity.Transaction
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		all, err = repos.Transactions.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Transaction, 0, len(all))
	for i := range all {
		if filter.match(&all[i]) {
			matched = append(matched, all[i])
		}
	}
	return pagination.Paginate(matched, params), nil
}

// VerifyTotals recomputes a stored transaction from its own line items,
// discount and VAT rate and reports whether the stored totals agree.
func (s *LedgerService) VerifyTotals(ctx context.Context, id string) (bool, error) {
	tx, err := s.GetTransaction(ctx, id)
	if err != nil {
		return false, err
	}
	ok := pricing.Matches(tx)
	if !ok {
		s.log.Warn("stored totals differ from recomputation",
			zap.String("transaction_id", tx.ID),
			zap.String("receipt_no", tx.ReceiptNo),
		)
	}
	return ok, nil
}
