package services

import (
	"context"

	"trapbite/internal/domain"
	"trapbite/internal/store"
	"trapbite/internal/validate"
)

type ProductService struct {
	Store store.Store
}

func NewProductService(st store.Store) *ProductService {
	return &ProductService{Store: st}
}

func (s *ProductService) List(ctx context.Context, sort domain.Sort) ([]domain.Product, error) {
	return s.Store.Products().List(ctx, sort)
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.Store.Products().Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, err
	}
	p := in.Product()
	if err := validate.Struct(p); err != nil {
		return domain.Product{}, err
	}
	return s.Store.Products().Create(ctx, p)
}

// Update merges patch into the stored product and revalidates the result.
func (s *ProductService) Update(ctx context.Context, id string, patch domain.ProductPatch) (domain.Product, error) {
	p, err := s.Store.Products().Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	patch.Apply(&p)
	if err := validate.Struct(p); err != nil {
		return domain.Product{}, err
	}
	return s.Store.Products().Update(ctx, p)
}

func (s *ProductService) Delete(ctx context.Context, id string) (domain.Product, error) {
	return s.Store.Products().Delete(ctx, id)
}
