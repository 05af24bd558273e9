package service

import (
	"context"
	"strings"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	"github.com/sangkips/pos-ledger/internal/domain/repository"
	"github.com/sangkips/pos-ledger/pkg/apperror"
	"github.com/sangkips/pos-ledger/pkg/utils"
	"github.com/sangkips/pos-ledger/pkg/validator"
	"go.uber.org/zap"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	uow repository.UnitOfWork
	log *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(uow repository.UnitOfWork, log *zap.Logger) *CustomerService {
	return &CustomerService{uow: uow, log: log}
}

// SaveCustomerInput represents the create/update customer input. An empty ID creates a customer.
type SaveCustomerInput struct {
	ID      string
	Name    string
	TaxID   string
	Branch  string
	Address string
	Phone   string
}

// SaveCustomer upserts a directory entry. Snapshots already attached to
// transactions are not touched.
func (s *CustomerService) SaveCustomer(ctx context.Context, input *SaveCustomerInput) (*entity.Customer, error) {
	customer := entity.Customer{
		ID:      input.ID,
		Name:    strings.TrimSpace(input.Name),
		TaxID:   strings.TrimSpace(input.TaxID),
		Branch:  strings.TrimSpace(input.Branch),
		Address: input.Address,
		Phone:   input.Phone,
	}
	if customer.ID == "" {
		customer.ID = utils.NewID()
	}
	if err := validator.Validate(&customer); err != nil {
		return nil, err
	}

	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		return repos.Customers.Upsert(ctx, &customer)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("customer saved", zap.String("customer_id", customer.ID))
	return &customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	var customer *entity.Customer
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		customer, err = repos.Customers.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers returns every saved customer
func (s *CustomerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := s.uow.Do(ctx, func(repos repository.Repositories) error {
		var err error
		customers, err = repos.Customers.List(ctx)
		return err
	})
	return customers, err
}

// DeleteCustomer removes a directory entry
func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	return s.uow.Do(ctx, func(repos repository.Repositories) error {
		removed, err := repos.Customers.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !removed {
			return apperror.NewNotFoundError("Customer")
		}
		return nil
	})
}
