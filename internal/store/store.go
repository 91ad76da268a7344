// Package store defines the record store contract shared by the SQLite and
// MongoDB backends.
package store

import (
	"context"

	"trapbite/internal/domain"
)

type ProductRepo interface {
	List(ctx context.Context, sort domain.Sort) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) (domain.Product, error)

	// AdjustStock adds delta to the product's stock in one atomic write. With
	// a non-nil floor the write only happens when stock+delta >= *floor,
	// otherwise domain.ErrInsufficientStock is returned.
	AdjustStock(ctx context.Context, id string, delta int, floor *int) error
}

// SaleRepo has no Update: a sale is corrected by deleting and re-recording it.
type SaleRepo interface {
	List(ctx context.Context, sort domain.Sort) ([]domain.Sale, error)
	Get(ctx context.Context, id string) (domain.Sale, error)
	Create(ctx context.Context, s domain.Sale) (domain.Sale, error)
	Delete(ctx context.Context, id string) (domain.Sale, error)
}

type ExpenseRepo interface {
	List(ctx context.Context, sort domain.Sort) ([]domain.Expense, error)
	Get(ctx context.Context, id string) (domain.Expense, error)
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, id string) (domain.Expense, error)
}

type DebtRepo interface {
	List(ctx context.Context, sort domain.Sort) ([]domain.Debt, error)
	Get(ctx context.Context, id string) (domain.Debt, error)
	Create(ctx context.Context, d domain.Debt) (domain.Debt, error)
	Update(ctx context.Context, d domain.Debt) (domain.Debt, error)
	Delete(ctx context.Context, id string) (domain.Debt, error)
}

// Store bundles the four collections.
type Store interface {
	Products() ProductRepo
	Sales() SaleRepo
	Expenses() ExpenseRepo
	Debts() DebtRepo

	// WithTransaction runs fn against a view of the store whose writes commit
	// together or not at all. When Transactional reports false the backend
	// cannot provide that guarantee and fn runs without it.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Transactional() bool

	Ping(ctx context.Context) error
	Close() error
}

// SortField resolves a requested sort field against the allowed set,
// falling back to def when the field is unknown or empty.
func SortField(s domain.Sort, allowed map[string]string, def domain.Sort) (column string, desc bool) {
	if col, ok := allowed[s.Field]; ok && s.Field != "" {
		return col, s.Desc
	}
	return allowed[def.Field], def.Desc
}
