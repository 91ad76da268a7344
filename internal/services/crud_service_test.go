package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"trapbite/internal/domain"
	"trapbite/internal/services"
)

func TestProductService_CreateAndPatch(t *testing.T) {
	ctx := context.Background()
	svc := services.NewProductService(memStore(t))

	p, err := svc.Create(ctx, domain.ProductInput{
		Name: ptr(" Smoothie "), Category: ptr("Drink"), Price: ptr(1500.0), Stock: ptr(0), Unit: ptr("cups"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Smoothie" || p.Stock != 0 {
		t.Fatalf("bad product: %+v", p)
	}

	upd, err := svc.Update(ctx, p.ID, domain.ProductPatch{Price: ptr(1800.0)})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Price != 1800 || upd.Name != "Smoothie" || upd.Unit != "cups" || upd.Category != "Drink" {
		t.Fatalf("patch should keep other fields: %+v", upd)
	}

	var ve *domain.ValidationError
	if _, err := svc.Update(ctx, p.ID, domain.ProductPatch{Category: ptr("Snack")}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", domain.ProductPatch{Price: ptr(1.0)}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductService_CreateRejectsMissingFields(t *testing.T) {
	svc := services.NewProductService(memStore(t))
	_, err := svc.Create(context.Background(), domain.ProductInput{Name: ptr("Tigernut")})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Problems) != 4 {
		t.Fatalf("expected 4 problems, got %v", err)
	}
}

func TestExpenseService_Defaults(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := services.NewExpenseService(memStore(t))
	svc.Now = func() time.Time { return fixed }

	e, err := svc.Create(ctx, domain.ExpenseInput{
		Description: ptr("Gas refill"), Category: ptr("Supplies"), Amount: ptr(12000.0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !e.Date.Equal(fixed) {
		t.Fatalf("date should default to now, got %v", e.Date)
	}

	upd, err := svc.Update(ctx, e.ID, domain.ExpensePatch{Amount: ptr(13000.0)})
	if err != nil {
		t.Fatal(err)
	}
	if upd.Description != "Gas refill" || upd.Amount != 13000 || !upd.Date.Equal(fixed) {
		t.Fatalf("partial update lost fields: %+v", upd)
	}
}

func TestDebtService_StatusFlow(t *testing.T) {
	ctx := context.Background()
	svc := services.NewDebtService(memStore(t))
	due := domain.NewDate(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	d, err := svc.Create(ctx, domain.DebtInput{
		CustomerName: ptr("Ada"), Amount: ptr(5000.0), Description: ptr("2 shawarma"), DueDate: due,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.Status != domain.DebtPending {
		t.Fatalf("status should default to Pending, got %q", d.Status)
	}
	if _, err := svc.Create(ctx, domain.DebtInput{
		CustomerName: ptr("Bola"), Amount: ptr(800.0), Description: ptr("tigernut"), DueDate: due, Status: ptr("Paid"),
	}); err != nil {
		t.Fatal(err)
	}

	pending, _ := svc.List(ctx, domain.Sort{}, domain.DebtPending)
	if len(pending) != 1 || pending[0].CustomerName != "Ada" {
		t.Fatalf("pending filter: %+v", pending)
	}

	paid, err := svc.Update(ctx, d.ID, domain.DebtPatch{Status: ptr("Paid")})
	if err != nil || paid.Status != domain.DebtPaid || paid.Amount != 5000 {
		t.Fatalf("mark paid: %+v %v", paid, err)
	}
	var ve *domain.ValidationError
	if _, err := svc.Update(ctx, d.ID, domain.DebtPatch{Status: ptr("Forgiven")}); !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDelete_NotFoundForEveryKind(t *testing.T) {
	ctx := context.Background()
	st := memStore(t)
	checks := map[string]func() error{
		"product": func() error { _, err := services.NewProductService(st).Delete(ctx, "missing"); return err },
		"sale":    func() error { _, err := services.NewSaleService(st).DeleteSale(ctx, "missing"); return err },
		"expense": func() error { _, err := services.NewExpenseService(st).Delete(ctx, "missing"); return err },
		"debt":    func() error { _, err := services.NewDebtService(st).Delete(ctx, "missing"); return err },
	}
	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			if err := fn(); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected not found, got %v", err)
			}
		})
	}
}

func TestReportService_Summary(t *testing.T) {
	ctx := context.Background()
	st := memStore(t)
	p := shawarma(t, st)
	if _, err := st.Products().Create(ctx, domain.Product{
		Name: "Smoothie", Category: domain.CategoryDrink, Price: 1500, Stock: 3, Unit: "cups",
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := services.NewSaleService(st).RecordSale(ctx, domain.SaleInput{ProductID: p.ID, Quantity: ptr(4)}); err != nil {
		t.Fatal(err)
	}
	if _, err := services.NewExpenseService(st).Create(ctx, domain.ExpenseInput{
		Description: ptr("Rent"), Category: ptr("Rent"), Amount: ptr(2500.0),
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := services.NewDebtService(st).Create(ctx, domain.DebtInput{
		CustomerName: ptr("Ada"), Amount: ptr(700.0), Description: ptr("zobo"),
		DueDate: domain.NewDate(time.Now().AddDate(0, 0, 7)),
	}); err != nil {
		t.Fatal(err)
	}

	sum, err := services.NewReportService(st, 10).Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sum.TotalSales != 10000 || sum.TotalExpenses != 2500 || sum.NetIncome != 7500 || sum.ProfitMargin != 75 {
		t.Fatalf("money figures: %+v", sum)
	}
	if sum.StockCount != 49 || sum.InventoryValue != 46*2500+3*1500 {
		t.Fatalf("stock figures: %+v", sum)
	}
	if len(sum.LowStock) != 1 || sum.LowStock[0].Name != "Smoothie" {
		t.Fatalf("low stock: %+v", sum.LowStock)
	}
	if sum.PendingDebtCount != 1 || sum.PendingDebtTotal != 700 {
		t.Fatalf("debts: %+v", sum)
	}
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		price float64
		qty   int
		want  float64
	}{
		{2500, 2, 5000},
		{0.1, 3, 0.3},
		{19.99, 3, 59.97},
	}
	for _, c := range cases {
		if got := services.LineTotal(c.price, c.qty); got != c.want {
			t.Errorf("LineTotal(%v, %d) = %v, want %v", c.price, c.qty, got, c.want)
		}
	}
}
