package repos

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"trapbite/internal/store"
)

// Store is the SQLite-backed record store. Inside WithTransaction the repos
// run on the open *sqlx.Tx instead of the pool.
type Store struct {
	db   *sqlx.DB
	q    sqlx.ExtContext
	inTx bool
}

var _ store.Store = (*Store)(nil)

func NewStore(db *sqlx.DB) *Store { return &Store{db: db, q: db} }

func (s *Store) Products() store.ProductRepo { return NewProductRepo(s.q) }
func (s *Store) Sales() store.SaleRepo       { return NewSaleRepo(s.q) }
func (s *Store) Expenses() store.ExpenseRepo { return NewExpenseRepo(s.q) }
func (s *Store) Debts() store.DebtRepo       { return NewDebtRepo(s.q) }

func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, &Store{db: s.db, q: tx, inTx: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Transactional() bool { return true }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error { return s.db.Close() }
