package repository

import (
	"context"

	"github.com/sangkips/pos-ledger/internal/domain/entity"
	domainRepo "github.com/sangkips/pos-ledger/internal/domain/repository"
)

type customerRepository struct {
	kv domainRepo.KeyValueReadWriter
}

// NewCustomerRepository creates a repository over the pos_customers document
func NewCustomerRepository(kv domainRepo.KeyValueReadWriter) domainRepo.CustomerRepository {
	return &customerRepository{kv: kv}
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	customers, _, err := readCollection[entity.Customer](ctx, r.kv, domainRepo.KeyCustomers)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []entity.Customer{}
	}
	return customers, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	customers, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

func (r *customerRepository) Upsert(ctx context.Context, customer *entity.Customer) error {
	customers, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range customers {
		if customers[i].ID == customer.ID {
			customers[i] = *customer
			return writeCollection(ctx, r.kv, domainRepo.KeyCustomers, customers)
		}
	}
	customers = append(customers, *customer)
	return writeCollection(ctx, r.kv, domainRepo.KeyCustomers, customers)
}

func (r *customerRepository) Delete(ctx context.Context, id string) (bool, error) {
	customers, err := r.List(ctx)
	if err != nil {
		return false, err
	}

	kept := make([]entity.Customer, 0, len(customers))
	for _, c := range customers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(customers) {
		return false, nil
	}
	return true, writeCollection(ctx, r.kv, domainRepo.KeyCustomers, kept)
}
