package mongostore_test

import (
	"context"
	"errors"
	"os"
	"strconv"
	"testing"
	"time"

	"trapbite/internal/domain"
	"trapbite/internal/mongostore"
)

// These tests need a live server; set MONGO_TEST_URI to run them, e.g.
// MONGO_TEST_URI=mongodb://localhost:27017 against `docker run -p 27017:27017 mongo:7`.
func openStore(t *testing.T) *mongostore.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	st, err := mongostore.Open(context.Background(), mongostore.Options{
		URI:      uri,
		Database: "trapbite_test_" + strconv.FormatInt(time.Now().UnixNano(), 36),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestMongo_StockGuard(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	p, err := st.Products().Create(ctx, domain.Product{
		Name: "Zobo", Category: domain.CategoryDrink, Price: 500, Stock: 2, Unit: "bottles",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zero := 0
	if err := st.Products().AdjustStock(ctx, p.ID, -2, &zero); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if err := st.Products().AdjustStock(ctx, p.ID, -1, &zero); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	got, err := st.Products().Get(ctx, p.ID)
	if err != nil || got.Stock != 0 {
		t.Fatalf("stock=%d err=%v", got.Stock, err)
	}
}

func TestMongo_MalformedIDIsNotFound(t *testing.T) {
	st := openStore(t)
	if _, err := st.Debts().Get(context.Background(), "not-an-object-id"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := st.Sales().Delete(context.Background(), "65a000000000000000000000"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
