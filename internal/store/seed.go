package store

import (
	"context"
	"fmt"

	"trapbite/internal/domain"
)

// DemoProducts is the starter catalogue loaded by SeedDemo.
var DemoProducts = []domain.Product{
	{Name: "Shawarma", Category: domain.CategoryFood, Price: 2500, Stock: 50, Unit: "wraps"},
	{Name: "Zobo", Category: domain.CategoryDrink, Price: 500, Stock: 100, Unit: "bottles"},
	{Name: "Smoothie", Category: domain.CategoryDrink, Price: 1500, Stock: 30, Unit: "cups"},
	{Name: "Tigernut", Category: domain.CategoryDrink, Price: 800, Stock: 60, Unit: "bottles"},
}

// SeedDemo inserts DemoProducts when the product collection is empty and
// reports how many records it wrote.
func SeedDemo(ctx context.Context, s Store) (int, error) {
	existing, err := s.Products().List(ctx, domain.DefaultProductSort)
	if err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}
	n := 0
	for _, p := range DemoProducts {
		if _, err := s.Products().Create(ctx, p); err != nil {
			return n, fmt.Errorf("seed %s: %w", p.Name, err)
		}
		n++
	}
	return n, nil
}
