package repository

import "context"

// Repositories are bound to one unit of work
type Repositories struct {
	Products     ProductRepository
	Transactions TransactionRepository
	Customers    CustomerRepository
	Settings     SettingsRepository
}

// UnitOfWork runs fn with exclusive access to the store. Writes made through
// repos are staged and committed in one batch only if fn returns nil.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
