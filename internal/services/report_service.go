package services

import (
	"context"

	"github.com/shopspring/decimal"

	"trapbite/internal/domain"
	"trapbite/internal/store"
)

type ReportService struct {
	Store             store.Store
	LowStockThreshold int
}

func NewReportService(st store.Store, lowStock int) *ReportService {
	return &ReportService{Store: st, LowStockThreshold: lowStock}
}

// Summary computes the dashboard figures over every stored record.
func (s *ReportService) Summary(ctx context.Context) (domain.Summary, error) {
	products, err := s.Store.Products().List(ctx, domain.Sort{Field: "name"})
	if err != nil {
		return domain.Summary{}, err
	}
	sales, err := s.Store.Sales().List(ctx, domain.DefaultDatedSort)
	if err != nil {
		return domain.Summary{}, err
	}
	expenses, err := s.Store.Expenses().List(ctx, domain.DefaultDatedSort)
	if err != nil {
		return domain.Summary{}, err
	}
	debts, err := s.Store.Debts().List(ctx, domain.DefaultDatedSort)
	if err != nil {
		return domain.Summary{}, err
	}

	sum := domain.Summary{
		SalesCount:    len(sales),
		LowStock:      []domain.Product{},
		LowStockLimit: s.LowStockThreshold,
	}

	salesTotal := decimal.Zero
	for _, sale := range sales {
		salesTotal = salesTotal.Add(decimal.NewFromFloat(sale.Total))
	}
	expenseTotal := decimal.Zero
	for _, e := range expenses {
		expenseTotal = expenseTotal.Add(decimal.NewFromFloat(e.Amount))
	}
	net := salesTotal.Sub(expenseTotal)

	inventory := decimal.Zero
	for _, p := range products {
		sum.StockCount += p.Stock
		inventory = inventory.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(int64(p.Stock))))
		if p.Stock < s.LowStockThreshold {
			sum.LowStock = append(sum.LowStock, p)
		}
	}

	pending := decimal.Zero
	for _, d := range debts {
		if d.Status == domain.DebtPending {
			pending = pending.Add(decimal.NewFromFloat(d.Amount))
			sum.PendingDebtCount++
		}
	}

	sum.TotalSales = salesTotal.Round(2).InexactFloat64()
	sum.TotalExpenses = expenseTotal.Round(2).InexactFloat64()
	sum.NetIncome = net.Round(2).InexactFloat64()
	sum.InventoryValue = inventory.Round(2).InexactFloat64()
	sum.PendingDebtTotal = pending.Round(2).InexactFloat64()
	if salesTotal.IsPositive() {
		sum.ProfitMargin = int(net.Div(salesTotal).Mul(decimal.NewFromInt(100)).Round(0).IntPart())
	}
	return sum, nil
}
