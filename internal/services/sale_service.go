package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trapbite/internal/domain"
	"trapbite/internal/store"
	"trapbite/internal/validate"
)

type SaleService struct {
	Store store.Store
	Now   func() time.Time
}

func NewSaleService(st store.Store) *SaleService {
	return &SaleService{Store: st, Now: time.Now}
}

type DeleteSaleResult struct {
	Sale domain.Sale `json:"sale"`
	// StockRestored is false when the product had already been deleted.
	StockRestored bool `json:"stockRestored"`
}

func (s *SaleService) List(ctx context.Context, sort domain.Sort) ([]domain.Sale, error) {
	return s.Store.Sales().List(ctx, sort)
}

func (s *SaleService) Get(ctx context.Context, id string) (domain.Sale, error) {
	return s.Store.Sales().Get(ctx, id)
}

// RecordSale prices the sale from the current product, takes the quantity
// out of stock and stores the sale. Stock never goes below zero: an
// oversell fails with domain.ErrInsufficientStock and nothing is written.
func (s *SaleService) RecordSale(ctx context.Context, in domain.SaleInput) (domain.Sale, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Sale{}, err
	}
	qty := *in.Quantity

	var out domain.Sale
	err := s.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		p, err := tx.Products().Get(ctx, in.ProductID)
		if err != nil {
			return err
		}

		sale := domain.Sale{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Quantity:      qty,
			Total:         LineTotal(p.Price, qty),
			PaymentMethod: in.PaymentMethod,
		}
		if in.Date != nil {
			sale.Date = in.Date.Time
		}
		sale.ApplyDefaults(s.Now())
		if err := validate.Struct(sale); err != nil {
			return err
		}

		floor := 0
		if err := tx.Products().AdjustStock(ctx, p.ID, -qty, &floor); err != nil {
			return err
		}
		out, err = tx.Sales().Create(ctx, sale)
		if err != nil && !tx.Transactional() {
			// no rollback available; put the stock back by hand
			if rerr := tx.Products().AdjustStock(ctx, p.ID, qty, nil); rerr != nil {
				return errors.Join(err, fmt.Errorf("restore stock: %w", rerr))
			}
		}
		return err
	})
	if err != nil {
		return domain.Sale{}, err
	}
	return out, nil
}

// DeleteSale removes the sale and returns its quantity to the product.
// A product deleted in the meantime is skipped, not recreated.
func (s *SaleService) DeleteSale(ctx context.Context, id string) (DeleteSaleResult, error) {
	var res DeleteSaleResult
	err := s.Store.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		sale, err := tx.Sales().Delete(ctx, id)
		if err != nil {
			return err
		}
		res.Sale = sale

		err = tx.Products().AdjustStock(ctx, sale.ProductID, sale.Quantity, nil)
		switch {
		case err == nil:
			res.StockRestored = true
		case errors.Is(err, domain.ErrNotFound):
			res.StockRestored = false
		default:
			return err
		}
		return nil
	})
	if err != nil {
		return DeleteSaleResult{}, err
	}
	return res, nil
}
