package domain

import (
	"strings"
	"time"
)

const (
	CategoryFood  = "Food"
	CategoryDrink = "Drink"

	PaymentCash     = "Cash"
	PaymentTransfer = "Transfer"

	DebtPending = "Pending"
	DebtPaid    = "Paid"
)

type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Category  string    `json:"category" validate:"oneof=Food Drink"`
	Price     float64   `json:"price" validate:"gte=0"`
	Stock     int       `json:"stock"` // direct edits may set any value; sales never push it below zero
	Unit      string    `json:"unit" validate:"required"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Sale records one product sold. ProductName and Total are captured when the
// sale is written and are not touched by later product edits.
type Sale struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"productId" validate:"required"`
	ProductName   string    `json:"productName" validate:"required"`
	Quantity      int       `json:"quantity" validate:"gt=0"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"paymentMethod" validate:"oneof=Cash Transfer"`
	Date          time.Time `json:"date" validate:"required"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"description" validate:"required"`
	Category    string    `json:"category" validate:"required"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Date        time.Time `json:"date" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Debt struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName" validate:"required"`
	Amount       float64   `json:"amount" validate:"gte=0"`
	Description  string    `json:"description" validate:"required"`
	DueDate      time.Time `json:"dueDate" validate:"required"`
	Status       string    `json:"status" validate:"oneof=Pending Paid"`
	Date         time.Time `json:"date" validate:"required"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ---------- Partial updates ----------

// ProductPatch carries the fields of a partial product update; nil fields are
// left untouched.
type ProductPatch struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Stock    *int     `json:"stock"`
	Unit     *string  `json:"unit"`
}

func (p ProductPatch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		dst.Category = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		dst.Price = *p.Price
	}
	if p.Stock != nil {
		dst.Stock = *p.Stock
	}
	if p.Unit != nil {
		dst.Unit = strings.TrimSpace(*p.Unit)
	}
}

type ExpensePatch struct {
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Amount      *float64 `json:"amount"`
	Date        *Date    `json:"date"`
}

func (p ExpensePatch) Apply(dst *Expense) {
	if p.Description != nil {
		dst.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		dst.Category = strings.TrimSpace(*p.Category)
	}
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
	if p.Date != nil {
		dst.Date = p.Date.Time
	}
}

type DebtPatch struct {
	CustomerName *string  `json:"customerName"`
	Amount       *float64 `json:"amount"`
	Description  *string  `json:"description"`
	DueDate      *Date    `json:"dueDate"`
	Status       *string  `json:"status"`
	Date         *Date    `json:"date"`
}

func (p DebtPatch) Apply(dst *Debt) {
	if p.CustomerName != nil {
		dst.CustomerName = strings.TrimSpace(*p.CustomerName)
	}
	if p.Amount != nil {
		dst.Amount = *p.Amount
	}
	if p.Description != nil {
		dst.Description = strings.TrimSpace(*p.Description)
	}
	if p.DueDate != nil {
		dst.DueDate = p.DueDate.Time
	}
	if p.Status != nil {
		dst.Status = strings.TrimSpace(*p.Status)
	}
	if p.Date != nil {
		dst.Date = p.Date.Time
	}
}

// ---------- Create inputs ----------
// Inputs mirror the patches but mark the fields a new record cannot do without.

type ProductInput struct {
	Name     *string  `json:"name" validate:"required"`
	Category *string  `json:"category" validate:"required"`
	Price    *float64 `json:"price" validate:"required"`
	Stock    *int     `json:"stock" validate:"required"`
	Unit     *string  `json:"unit" validate:"required"`
}

func (in ProductInput) Product() Product {
	var p Product
	ProductPatch(in).Apply(&p)
	return p
}

type SaleInput struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      *int   `json:"quantity" validate:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=Cash Transfer"`
	Date          *Date  `json:"date"`
}

type ExpenseInput struct {
	Description *string  `json:"description" validate:"required"`
	Category    *string  `json:"category" validate:"required"`
	Amount      *float64 `json:"amount" validate:"required"`
	Date        *Date    `json:"date"`
}

func (in ExpenseInput) Expense() Expense {
	var e Expense
	ExpensePatch(in).Apply(&e)
	return e
}

type DebtInput struct {
	CustomerName *string  `json:"customerName" validate:"required"`
	Amount       *float64 `json:"amount" validate:"required"`
	Description  *string  `json:"description" validate:"required"`
	DueDate      *Date    `json:"dueDate" validate:"required"`
	Status       *string  `json:"status"`
	Date         *Date    `json:"date"`
}

func (in DebtInput) Debt() Debt {
	d := Debt{Status: DebtPending}
	DebtPatch(in).Apply(&d)
	return d
}

// ---------- Listing ----------

// Sort names a record field (JSON spelling) and direction for list queries.
type Sort struct {
	Field string
	Desc  bool
}

var (
	DefaultProductSort = Sort{Field: "createdAt", Desc: true}
	DefaultDatedSort   = Sort{Field: "date", Desc: true}
)

// Summary aggregates the dashboard figures.
type Summary struct {
	TotalSales       float64   `json:"totalSales"`
	TotalExpenses    float64   `json:"totalExpenses"`
	NetIncome        float64   `json:"netIncome"`
	ProfitMargin     int       `json:"profitMargin"` // percent of sales, rounded
	SalesCount       int       `json:"salesCount"`
	StockCount       int       `json:"stockCount"`
	InventoryValue   float64   `json:"inventoryValue"`
	LowStock         []Product `json:"lowStock"`
	LowStockLimit    int       `json:"lowStockLimit"`
	PendingDebtTotal float64   `json:"pendingDebtTotal"`
	PendingDebtCount int       `json:"pendingDebtCount"`
}

// ---------- Defaults ----------

// ApplyDefaults fills the fields a new sale may omit.
func (s *Sale) ApplyDefaults(now time.Time) {
	if s.PaymentMethod == "" {
		s.PaymentMethod = PaymentCash
	}
	if s.Date.IsZero() {
		s.Date = now
	}
}

func (e *Expense) ApplyDefaults(now time.Time) {
	if e.Date.IsZero() {
		e.Date = now
	}
}

func (d *Debt) ApplyDefaults(now time.Time) {
	if d.Status == "" {
		d.Status = DebtPending
	}
	if d.Date.IsZero() {
		d.Date = now
	}
}
