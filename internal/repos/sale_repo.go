package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"trapbite/internal/domain"
	"trapbite/internal/store"
)

type SaleRepo struct{ q sqlx.ExtContext }

func NewSaleRepo(q sqlx.ExtContext) *SaleRepo { return &SaleRepo{q: q} }

type saleRow struct {
	ID            string  `db:"id"`
	ProductID     string  `db:"product_id"`
	ProductName   string  `db:"product_name"`
	Quantity      int     `db:"quantity"`
	Total         float64 `db:"total"`
	PaymentMethod string  `db:"payment_method"`
	Date          string  `db:"date"`
	CreatedAt     string  `db:"created_at"`
	UpdatedAt     string  `db:"updated_at"`
}

func (r saleRow) sale() domain.Sale {
	return domain.Sale{
		ID:            r.ID,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Quantity:      r.Quantity,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		Date:          parseTime(r.Date),
		CreatedAt:     parseTime(r.CreatedAt),
		UpdatedAt:     parseTime(r.UpdatedAt),
	}
}

const saleCols = `id, product_id, product_name, quantity, total, payment_method, date, created_at, updated_at`

var saleSorts = map[string]string{
	"date":        "date",
	"createdAt":   "created_at",
	"total":       "total",
	"quantity":    "quantity",
	"productName": "product_name",
}

func (r *SaleRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Sale, error) {
	col, desc := store.SortField(sort, saleSorts, domain.DefaultDatedSort)
	var rows []saleRow
	if err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+saleCols+` FROM sales ORDER BY `+col+direction(desc)+`, id`); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]domain.Sale, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.sale())
	}
	return out, nil
}

func (r *SaleRepo) Get(ctx context.Context, id string) (domain.Sale, error) {
	var row saleRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+saleCols+` FROM sales WHERE id = ?`, id); err != nil {
		return domain.Sale{}, notFound("get sale", err)
	}
	return row.sale(), nil
}

func (r *SaleRepo) Create(ctx context.Context, s domain.Sale) (domain.Sale, error) {
	now := time.Now().UTC()
	s.ID = uuid.NewString()
	s.CreatedAt, s.UpdatedAt = now, now
	s.Date = s.Date.UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sales(`+saleCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.ProductID, s.ProductName, s.Quantity, s.Total, s.PaymentMethod,
		formatTime(s.Date), formatTime(now), formatTime(now))
	if err != nil {
		return domain.Sale{}, fmt.Errorf("create sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) Delete(ctx context.Context, id string) (domain.Sale, error) {
	var row saleRow
	if err := sqlx.GetContext(ctx, r.q, &row, `DELETE FROM sales WHERE id = ? RETURNING `+saleCols, id); err != nil {
		return domain.Sale{}, notFound("delete sale", err)
	}
	return row.sale(), nil
}
