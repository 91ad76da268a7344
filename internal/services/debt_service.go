package services

import (
	"context"
	"strings"
	"time"

	"trapbite/internal/domain"
	"trapbite/internal/store"
	"trapbite/internal/validate"
)

type DebtService struct {
	Store store.Store
	Now   func() time.Time
}

func NewDebtService(st store.Store) *DebtService {
	return &DebtService{Store: st, Now: time.Now}
}

// List returns debts in sort order, keeping only those with the given
// status when status is non-empty.
func (s *DebtService) List(ctx context.Context, sort domain.Sort, status string) ([]domain.Debt, error) {
	all, err := s.Store.Debts().List(ctx, sort)
	if err != nil || status == "" {
		return all, err
	}
	out := make([]domain.Debt, 0, len(all))
	for _, d := range all {
		if strings.EqualFold(d.Status, status) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *DebtService) Get(ctx context.Context, id string) (domain.Debt, error) {
	return s.Store.Debts().Get(ctx, id)
}

func (s *DebtService) Create(ctx context.Context, in domain.DebtInput) (domain.Debt, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Debt{}, err
	}
	d := in.Debt()
	d.ApplyDefaults(s.Now())
	if err := validate.Struct(d); err != nil {
		return domain.Debt{}, err
	}
	return s.Store.Debts().Create(ctx, d)
}

func (s *DebtService) Update(ctx context.Context, id string, patch domain.DebtPatch) (domain.Debt, error) {
	d, err := s.Store.Debts().Get(ctx, id)
	if err != nil {
		return domain.Debt{}, err
	}
	patch.Apply(&d)
	if err := validate.Struct(d); err != nil {
		return domain.Debt{}, err
	}
	return s.Store.Debts().Update(ctx, d)
}

func (s *DebtService) Delete(ctx context.Context, id string) (domain.Debt, error) {
	return s.Store.Debts().Delete(ctx, id)
}
