package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"trapbite/internal/domain"
	"trapbite/internal/store"
)

type ProductRepo struct{ q sqlx.ExtContext }

func NewProductRepo(q sqlx.ExtContext) *ProductRepo { return &ProductRepo{q: q} }

type productRow struct {
	ID        string  `db:"id"`
	Name      string  `db:"name"`
	Category  string  `db:"category"`
	Price     float64 `db:"price"`
	Stock     int     `db:"stock"`
	Unit      string  `db:"unit"`
	CreatedAt string  `db:"created_at"`
	UpdatedAt string  `db:"updated_at"`
}

func (r productRow) product() domain.Product {
	return domain.Product{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Price:     r.Price,
		Stock:     r.Stock,
		Unit:      r.Unit,
		CreatedAt: parseTime(r.CreatedAt),
		UpdatedAt: parseTime(r.UpdatedAt),
	}
}

const productCols = `id, name, category, price, stock, unit, created_at, updated_at`

var productSorts = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"category":  "category",
}

func (r *ProductRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Product, error) {
	col, desc := store.SortField(sort, productSorts, domain.DefaultProductSort)
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+productCols+` FROM products ORDER BY `+col+direction(desc)+`, id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.product())
	}
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if err != nil {
		return domain.Product{}, notFound("get product", err)
	}
	return row.product(), nil
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt, p.UpdatedAt = now, now
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO products(`+productCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Category, p.Price, p.Stock, p.Unit, formatTime(now), formatTime(now))
	if err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row, `
		UPDATE products
		SET name = ?, category = ?, price = ?, stock = ?, unit = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+productCols,
		p.Name, p.Category, p.Price, p.Stock, p.Unit, formatTime(time.Now()), p.ID)
	if err != nil {
		return domain.Product{}, notFound("update product", err)
	}
	return row.product(), nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	err := sqlx.GetContext(ctx, r.q, &row, `DELETE FROM products WHERE id = ? RETURNING `+productCols, id)
	if err != nil {
		return domain.Product{}, notFound("delete product", err)
	}
	return row.product(), nil
}

// AdjustStock applies delta in a single UPDATE. With a floor the row only
// changes when the resulting stock stays at or above it.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int, floor *int) error {
	query := `UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`
	args := []any{delta, formatTime(time.Now()), id}
	if floor != nil {
		query += ` AND stock + ? >= ?`
		args = append(args, delta, *floor)
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if n > 0 {
		return nil
	}
	if floor == nil {
		return domain.ErrNotFound
	}

	// The guarded update matched nothing: missing product or not enough stock.
	var count int
	if err := sqlx.GetContext(ctx, r.q, &count, `SELECT COUNT(*) FROM products WHERE id = ?`, id); err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w for product %s", domain.ErrInsufficientStock, id)
}

func direction(desc bool) string {
	if desc {
		return " DESC"
	}
	return " ASC"
}

// notFound maps sql.ErrNoRows to domain.ErrNotFound and wraps anything else.
func notFound(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
