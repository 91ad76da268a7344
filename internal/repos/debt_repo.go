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

type DebtRepo struct{ q sqlx.ExtContext }

func NewDebtRepo(q sqlx.ExtContext) *DebtRepo { return &DebtRepo{q: q} }

type debtRow struct {
	ID           string  `db:"id"`
	CustomerName string  `db:"customer_name"`
	Amount       float64 `db:"amount"`
	Description  string  `db:"description"`
	DueDate      string  `db:"due_date"`
	Status       string  `db:"status"`
	Date         string  `db:"date"`
	CreatedAt    string  `db:"created_at"`
	UpdatedAt    string  `db:"updated_at"`
}

func (r debtRow) debt() domain.Debt {
	return domain.Debt{
		ID:           r.ID,
		CustomerName: r.CustomerName,
		Amount:       r.Amount,
		Description:  r.Description,
		DueDate:      parseTime(r.DueDate),
		Status:       r.Status,
		Date:         parseTime(r.Date),
		CreatedAt:    parseTime(r.CreatedAt),
		UpdatedAt:    parseTime(r.UpdatedAt),
	}
}

const debtCols = `id, customer_name, amount, description, due_date, status, date, created_at, updated_at`

var debtSorts = map[string]string{
	"date":         "date",
	"dueDate":      "due_date",
	"createdAt":    "created_at",
	"amount":       "amount",
	"customerName": "customer_name",
	"status":       "status",
}

func (r *DebtRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Debt, error) {
	col, desc := store.SortField(sort, debtSorts, domain.DefaultDatedSort)
	var rows []debtRow
	if err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+debtCols+` FROM debts ORDER BY `+col+direction(desc)+`, id`); err != nil {
		return nil, fmt.Errorf("list debts: %w", err)
	}
	out := make([]domain.Debt, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.debt())
	}
	return out, nil
}

func (r *DebtRepo) Get(ctx context.Context, id string) (domain.Debt, error) {
	var row debtRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+debtCols+` FROM debts WHERE id = ?`, id); err != nil {
		return domain.Debt{}, notFound("get debt", err)
	}
	return row.debt(), nil
}

func (r *DebtRepo) Create(ctx context.Context, d domain.Debt) (domain.Debt, error) {
	now := time.Now().UTC()
	d.ID = uuid.NewString()
	d.CreatedAt, d.UpdatedAt = now, now
	d.Date, d.DueDate = d.Date.UTC(), d.DueDate.UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO debts(`+debtCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.CustomerName, d.Amount, d.Description, formatTime(d.DueDate), d.Status,
		formatTime(d.Date), formatTime(now), formatTime(now))
	if err != nil {
		return domain.Debt{}, fmt.Errorf("create debt: %w", err)
	}
	return d, nil
}

func (r *DebtRepo) Update(ctx context.Context, d domain.Debt) (domain.Debt, error) {
	var row debtRow
	err := sqlx.GetContext(ctx, r.q, &row, `
		UPDATE debts
		SET customer_name = ?, amount = ?, description = ?, due_date = ?, status = ?, date = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+debtCols,
		d.CustomerName, d.Amount, d.Description, formatTime(d.DueDate), d.Status,
		formatTime(d.Date), formatTime(time.Now()), d.ID)
	if err != nil {
		return domain.Debt{}, notFound("update debt", err)
	}
	return row.debt(), nil
}

func (r *DebtRepo) Delete(ctx context.Context, id string) (domain.Debt, error) {
	var row debtRow
	if err := sqlx.GetContext(ctx, r.q, &row, `DELETE FROM debts WHERE id = ? RETURNING `+debtCols, id); err != nil {
		return domain.Debt{}, notFound("delete debt", err)
	}
	return row.debt(), nil
}
