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

type ExpenseRepo struct{ q sqlx.ExtContext }

func NewExpenseRepo(q sqlx.ExtContext) *ExpenseRepo { return &ExpenseRepo{q: q} }

type expenseRow struct {
	ID          string  `db:"id"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Amount      float64 `db:"amount"`
	Date        string  `db:"date"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

func (r expenseRow) expense() domain.Expense {
	return domain.Expense{
		ID:          r.ID,
		Description: r.Description,
		Category:    r.Category,
		Amount:      r.Amount,
		Date:        parseTime(r.Date),
		CreatedAt:   parseTime(r.CreatedAt),
		UpdatedAt:   parseTime(r.UpdatedAt),
	}
}

const expenseCols = `id, description, category, amount, date, created_at, updated_at`

var expenseSorts = map[string]string{
	"date":      "date",
	"createdAt": "created_at",
	"amount":    "amount",
	"category":  "category",
}

func (r *ExpenseRepo) List(ctx context.Context, sort domain.Sort) ([]domain.Expense, error) {
	col, desc := store.SortField(sort, expenseSorts, domain.DefaultDatedSort)
	var rows []expenseRow
	if err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+expenseCols+` FROM expenses ORDER BY `+col+direction(desc)+`, id`); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]domain.Expense, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.expense())
	}
	return out, nil
}

func (r *ExpenseRepo) Get(ctx context.Context, id string) (domain.Expense, error) {
	var row expenseRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+expenseCols+` FROM expenses WHERE id = ?`, id); err != nil {
		return domain.Expense{}, notFound("get expense", err)
	}
	return row.expense(), nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt, e.UpdatedAt = now, now
	e.Date = e.Date.UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO expenses(`+expenseCols+`)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Description, e.Category, e.Amount, formatTime(e.Date), formatTime(now), formatTime(now))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	var row expenseRow
	err := sqlx.GetContext(ctx, r.q, &row, `
		UPDATE expenses
		SET description = ?, category = ?, amount = ?, date = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+expenseCols,
		e.Description, e.Category, e.Amount, formatTime(e.Date), formatTime(time.Now()), e.ID)
	if err != nil {
		return domain.Expense{}, notFound("update expense", err)
	}
	return row.expense(), nil
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) (domain.Expense, error) {
	var row expenseRow
	if err := sqlx.GetContext(ctx, r.q, &row, `DELETE FROM expenses WHERE id = ? RETURNING `+expenseCols, id); err != nil {
		return domain.Expense{}, notFound("delete expense", err)
	}
	return row.expense(), nil
}
