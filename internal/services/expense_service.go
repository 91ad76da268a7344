package services

import (
	"context"
	"time"

	"trapbite/internal/domain"
	"trapbite/internal/store"
	"trapbite/internal/validate"
)

type ExpenseService struct {
	Store store.Store
	Now   func() time.Time
}

func NewExpenseService(st store.Store) *ExpenseService {
	return &ExpenseService{Store: st, Now: time.Now}
}

func (s *ExpenseService) List(ctx context.Context, sort domain.Sort) ([]domain.Expense, error) {
	return s.Store.Expenses().List(ctx, sort)
}

func (s *ExpenseService) Get(ctx context.Context, id string) (domain.Expense, error) {
	return s.Store.Expenses().Get(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, in domain.ExpenseInput) (domain.Expense, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Expense{}, err
	}
	e := in.Expense()
	e.ApplyDefaults(s.Now())
	if err := validate.Struct(e); err != nil {
		return domain.Expense{}, err
	}
	return s.Store.Expenses().Create(ctx, e)
}

func (s *ExpenseService) Update(ctx context.Context, id string, patch domain.ExpensePatch) (domain.Expense, error) {
	e, err := s.Store.Expenses().Get(ctx, id)
	if err != nil {
		return domain.Expense{}, err
	}
	patch.Apply(&e)
	if err := validate.Struct(e); err != nil {
		return domain.Expense{}, err
	}
	return s.Store.Expenses().Update(ctx, e)
}

func (s *ExpenseService) Delete(ctx context.Context, id string) (domain.Expense, error) {
	return s.Store.Expenses().Delete(ctx, id)
}
