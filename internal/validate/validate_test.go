package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"trapbite/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestStructProduct(t *testing.T) {
	cases := []struct {
		name    string
		in      domain.Product
		wantErr string
	}{
		{"ok", domain.Product{Name: "Shawarma", Category: "Food", Price: 2500, Stock: 50, Unit: "wraps"}, ""},
		{"negative stock allowed", domain.Product{Name: "Zobo", Category: "Drink", Price: 500, Stock: -3, Unit: "bottles"}, ""},
		{"missing name", domain.Product{Category: "Food", Unit: "wraps"}, "name is required"},
		{"bad category", domain.Product{Name: "Chips", Category: "Snack", Unit: "bags"}, "category must be one of Food, Drink"},
		{"negative price", domain.Product{Name: "Chips", Category: "Food", Price: -1, Unit: "bags"}, "price must be at least 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Struct(tc.in)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("want ValidationError, got %v", err)
			}
			if !strings.Contains(verr.Error(), tc.wantErr) {
				t.Fatalf("want %q in %q", tc.wantErr, verr.Error())
			}
		})
	}
}

func TestStructSaleInput(t *testing.T) {
	if err := Struct(domain.SaleInput{ProductID: "p1", Quantity: ptr(2)}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if err := Struct(domain.SaleInput{ProductID: "p1"}); err == nil || !strings.Contains(err.Error(), "quantity is required") {
		t.Fatalf("missing quantity: got %v", err)
	}
	if err := Struct(domain.SaleInput{ProductID: "p1", Quantity: ptr(0)}); err == nil || !strings.Contains(err.Error(), "quantity must be greater than 0") {
		t.Fatalf("zero quantity: got %v", err)
	}
	if err := Struct(domain.SaleInput{ProductID: "p1", Quantity: ptr(1), PaymentMethod: "Card"}); err == nil {
		t.Fatal("unknown payment method accepted")
	}
}

func TestStructRecordDates(t *testing.T) {
	e := domain.Expense{Description: "Gas", Category: "Supplies", Amount: 100}
	if err := Struct(e); err == nil || !strings.Contains(err.Error(), "date is required") {
		t.Fatalf("zero expense date: got %v", err)
	}
	e.Date = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	if err := Struct(e); err != nil {
		t.Fatalf("dated expense rejected: %v", err)
	}
	s := domain.Sale{ProductID: "p1", ProductName: "Zobo", Quantity: 1, PaymentMethod: "Cash"}
	if err := Struct(s); err == nil || !strings.Contains(err.Error(), "date is required") {
		t.Fatalf("zero sale date: got %v", err)
	}
}

func TestEmailAndID(t *testing.T) {
	if _, ok := Email("admin@trapbiteims.com"); !ok {
		t.Fatal("valid email rejected")
	}
	if _, ok := Email("not-an-email"); ok {
		t.Fatal("invalid email accepted")
	}
	if _, ok := ID("65c9f0a1b2c3d4e5f6a7b8c9"); !ok {
		t.Fatal("object id rejected")
	}
	if _, ok := ID("../etc"); ok {
		t.Fatal("path id accepted")
	}
}
