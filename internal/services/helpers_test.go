package services_test

import (
	"context"
	"testing"

	"trapbite/internal/domain"
	"trapbite/internal/repos"
	"trapbite/internal/store"
)

func memStore(t *testing.T) store.Store {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	st := repos.NewStore(db)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func ptr[T any](v T) *T { return &v }

func shawarma(t *testing.T, st store.Store) domain.Product {
	t.Helper()
	p, err := st.Products().Create(context.Background(), domain.Product{
		Name: "Shawarma", Category: domain.CategoryFood, Price: 2500, Stock: 50, Unit: "wraps",
	})
	if err != nil {
		t.Fatal(err)
	}
	return p
}
