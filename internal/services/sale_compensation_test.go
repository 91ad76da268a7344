package services_test

import (
	"context"
	"errors"
	"testing"

	"trapbite/internal/domain"
	"trapbite/internal/services"
	"trapbite/internal/store"
)

// plainStore behaves like a backend without multi-document transactions.
// Sale inserts always fail, and restocking fails when failRestock is set.
type plainStore struct {
	store.Store
	createErr   error
	restockErr  error
	failRestock bool
}

func (s *plainStore) Transactional() bool { return false }

func (s *plainStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	return fn(ctx, s)
}

func (s *plainStore) Sales() store.SaleRepo {
	return failingSales{SaleRepo: s.Store.Sales(), err: s.createErr}
}

func (s *plainStore) Products() store.ProductRepo {
	if !s.failRestock {
		return s.Store.Products()
	}
	return failingRestock{ProductRepo: s.Store.Products(), err: s.restockErr}
}

type failingSales struct {
	store.SaleRepo
	err error
}

func (f failingSales) Create(context.Context, domain.Sale) (domain.Sale, error) {
	return domain.Sale{}, f.err
}

type failingRestock struct {
	store.ProductRepo
	err error
}

func (f failingRestock) AdjustStock(ctx context.Context, id string, delta int, floor *int) error {
	if delta > 0 {
		return f.err
	}
	return f.ProductRepo.AdjustStock(ctx, id, delta, floor)
}

func TestRecordSale_NoTransactions_RestoresStock(t *testing.T) {
	ctx := context.Background()
	base := memStore(t)
	p := shawarma(t, base)
	insertErr := errors.New("insert failed")
	svc := services.NewSaleService(&plainStore{Store: base, createErr: insertErr})

	_, err := svc.RecordSale(ctx, domain.SaleInput{ProductID: p.ID, Quantity: ptr(3)})
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}
	got, _ := base.Products().Get(ctx, p.ID)
	if got.Stock != 50 {
		t.Fatalf("stock should be put back to 50, got %d", got.Stock)
	}
	if sales, _ := base.Sales().List(ctx, domain.Sort{}); len(sales) != 0 {
		t.Fatalf("no sale should be stored, got %d", len(sales))
	}
}

func TestRecordSale_NoTransactions_RestoreFails(t *testing.T) {
	ctx := context.Background()
	base := memStore(t)
	p := shawarma(t, base)
	insertErr := errors.New("insert failed")
	restockErr := errors.New("restock failed")
	svc := services.NewSaleService(&plainStore{
		Store: base, createErr: insertErr, restockErr: restockErr, failRestock: true,
	})

	_, err := svc.RecordSale(ctx, domain.SaleInput{ProductID: p.ID, Quantity: ptr(3)})
	if !errors.Is(err, insertErr) || !errors.Is(err, restockErr) {
		t.Fatalf("expected both errors, got %v", err)
	}
	got, _ := base.Products().Get(ctx, p.ID)
	if got.Stock != 47 {
		t.Fatalf("decrement stands when the restore fails, want 47, got %d", got.Stock)
	}
}
