package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"trapbite/internal/domain"
	"trapbite/internal/store"
)

// ---------- sales ----------

type saleDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	ProductID     string             `bson:"productId"`
	ProductName   string             `bson:"productName"`
	Quantity      int                `bson:"quantity"`
	Total         float64            `bson:"total"`
	PaymentMethod string             `bson:"paymentMethod"`
	Date          time.Time          `bson:"date"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d saleDoc) sale() domain.Sale {
	return domain.Sale{
		ID:            d.ID.Hex(),
		ProductID:     d.ProductID,
		ProductName:   d.ProductName,
		Quantity:      d.Quantity,
		Total:         d.Total,
		PaymentMethod: d.PaymentMethod,
		Date:          d.Date,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

var saleSorts = map[string]string{
	"date":        "date",
	"createdAt":   "createdAt",
	"total":       "total",
	"quantity":    "quantity",
	"productName": "productName",
}

type SaleRepo struct{ coll *mongo.Collection }

func (r *SaleRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Sale, error) {
	field, desc := store.SortField(sort, saleSorts, domain.DefaultDatedSort)
	docs, err := findAll[saleDoc](ctx, r.coll, field, desc)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return mapSlice(docs, saleDoc.sale), nil
}

func (r *SaleRepo) Get(ctx context.Context, id string) (domain.Sale, error) {
	doc, err := findByID[saleDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Sale{}, notFound("get sale", err)
	}
	return doc.sale(), nil
}

func (r *SaleRepo) Create(ctx context.Context, s domain.Sale) (domain.Sale, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := saleDoc{
		ID: primitive.NewObjectID(), ProductID: s.ProductID, ProductName: s.ProductName,
		Quantity: s.Quantity, Total: s.Total, PaymentMethod: s.PaymentMethod,
		Date: s.Date.UTC().Truncate(time.Millisecond), CreatedAt: now, UpdatedAt: now,
	}
	if err := insert(ctx, r.coll, doc); err != nil {
		return domain.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	return doc.sale(), nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) (domain.Sale, error) {
	doc, err := deleteByID[saleDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Sale{}, notFound("delete sale", err)
	}
	return doc.sale(), nil
}

// ---------- expenses ----------

type expenseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Amount      float64            `bson:"amount"`
	Date        time.Time          `bson:"date"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d expenseDoc) expense() domain.Expense {
	return domain.Expense{
		ID:          d.ID.Hex(),
		Description: d.Description,
		Category:    d.Category,
		Amount:      d.Amount,
		Date:        d.Date,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

var expenseSorts = map[string]string{
	"date":      "date",
	"createdAt": "createdAt",
	"amount":    "amount",
	"category":  "category",
}

type ExpenseRepo struct{ coll *mongo.Collection }

func (r *ExpenseRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Expense, error) {
	field, desc := store.SortField(sort, expenseSorts, domain.DefaultDatedSort)
	docs, err := findAll[expenseDoc](ctx, r.coll, field, desc)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return mapSlice(docs, expenseDoc.expense), nil
}

func (r *ExpenseRepo) Get(ctx context.Context, id string) (domain.Expense, error) {
	doc, err := findByID[expenseDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Expense{}, notFound("get expense", err)
	}
	return doc.expense(), nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := expenseDoc{
		ID: primitive.NewObjectID(), Description: e.Description, Category: e.Category,
		Amount: e.Amount, Date: e.Date.UTC().Truncate(time.Millisecond), CreatedAt: now, UpdatedAt: now,
	}
	if err := insert(ctx, r.coll, doc); err != nil {
		return domain.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return doc.expense(), nil
}

func (r *ExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	doc, err := updateByID[expenseDoc](ctx, r.coll, e.ID, bson.M{
		"description": e.Description, "category": e.Category, "amount": e.Amount, "date": e.Date.UTC(),
	})
	if err != nil {
		return domain.Expense{}, notFound("update expense", err)
	}
	return doc.expense(), nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) (domain.Expense, error) {
	doc, err := deleteByID[expenseDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Expense{}, notFound("delete expense", err)
	}
	return doc.expense(), nil
}

// ---------- debts ----------

type debtDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CustomerName string             `bson:"customerName"`
	Amount       float64            `bson:"amount"`
	Description  string             `bson:"description"`
	DueDate      time.Time          `bson:"dueDate"`
	Status       string             `bson:"status"`
	Date         time.Time          `bson:"date"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d debtDoc) debt() domain.Debt {
	return domain.Debt{
		ID:           d.ID.Hex(),
		CustomerName: d.CustomerName,
		Amount:       d.Amount,
		Description:  d.Description,
		DueDate:      d.DueDate,
		Status:       d.Status,
		Date:         d.Date,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

var debtSorts = map[string]string{
	"date":         "date",
	"dueDate":      "dueDate",
	"createdAt":    "createdAt",
	"amount":       "amount",
	"customerName": "customerName",
	"status":       "status",
}

type DebtRepo struct{ coll *mongo.Collection }

func (r *DebtRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Debt, error) {
	field, desc := store.SortField(sort, debtSorts, domain.DefaultDatedSort)
	docs, err := findAll[debtDoc](ctx, r.coll, field, desc)
	if err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	return mapSlice(docs, debtDoc.debt), nil
}

func (r *DebtRepo) Get(ctx context.Context, id string) (domain.Debt, error) {
	doc, err := findByID[debtDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Debt{}, notFound("get debt", err)
	}
	return doc.debt(), nil
}

func (r *DebtRepo) Create(ctx context.Context, d domain.Debt) (domain.Debt, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := debtDoc{
		ID: primitive.NewObjectID(), CustomerName: d.CustomerName, Amount: d.Amount,
		Description: d.Description, DueDate: d.DueDate.UTC().Truncate(time.Millisecond), Status: d.Status,
		Date: d.Date.UTC().Truncate(time.Millisecond), CreatedAt: now, UpdatedAt: now,
	}
	if err := insert(ctx, r.coll, doc); err != nil {
		return domain.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return doc.debt(), nil
}

func (r *DebtRepo) Update(ctx context.Context, d domain.Debt) (domain.Debt, error) {
	doc, err := updateByID[debtDoc](ctx, r.coll, d.ID, bson.M{
		"customerName": d.CustomerName, "amount": d.Amount, "description": d.Description,
		"dueDate": d.DueDate.UTC(), "status": d.Status, "date": d.Date.UTC(),
	})
	if err != nil {
		return domain.Debt{}, notFound("update debt", err)
	}
	return doc.debt(), nil
}

func (r *DebtRepo) Delete(ctx context.Context, id string) (domain.Debt, error) {
	doc, err := deleteByID[debtDoc](ctx, r.coll, id)
	if err != nil {
		return domain.Debt{}, notFound("delete debt", err)
	}
	return doc.debt(), nil
}
