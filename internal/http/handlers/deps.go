package handlers

import (
	"trapbite/internal/config"
	"trapbite/internal/services"
	"trapbite/internal/store"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	SaleHandler    *SaleHandler
	ExpenseHandler *ExpenseHandler
	DebtHandler    *DebtHandler
	ReportHandler  *ReportHandler
	HealthHandler  *HealthHandler
}

func NewDeps(st store.Store, cfg config.Config, auth *services.AuthService) *Deps {
	return &Deps{
		AuthHandler:    &AuthHandler{Auth: auth, Secure: cfg.CookieSecure},
		ProductHandler: &ProductHandler{Products: services.NewProductService(st)},
		SaleHandler:    &SaleHandler{Sales: services.NewSaleService(st)},
		ExpenseHandler: &ExpenseHandler{Expenses: services.NewExpenseService(st)},
		DebtHandler:    &DebtHandler{Debts: services.NewDebtService(st)},
		ReportHandler:  &ReportHandler{Reports: services.NewReportService(st, cfg.LowStockThreshold)},
		HealthHandler:  &HealthHandler{Store: st, Driver: cfg.StoreDriver},
	}
}
