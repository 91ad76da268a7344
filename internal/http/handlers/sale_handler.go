package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trapbite/internal/domain"
	applog "trapbite/internal/log"
	"trapbite/internal/services"
)

type SaleHandler struct {
	Sales *services.SaleService
}

// GET /api/sales
func (h *SaleHandler) List(c *fiber.Ctx) error {
	items, err := h.Sales.List(c.UserContext(), parseSort(c, domain.DefaultDatedSort))
	if err != nil {
		return apiError(c, "sale", err)
	}
	return c.JSON(items)
}

// GET /api/sales/:id
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "sale", domain.ErrNotFound)
	}
	s, err := h.Sales.Get(c.UserContext(), id)
	if err != nil {
		return apiError(c, "sale", err)
	}
	return c.JSON(s)
}

// POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in domain.SaleInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	s, err := h.Sales.RecordSale(c.UserContext(), in)
	if err != nil {
		// the product in the body is what was not found
		return apiError(c, "product", err)
	}
	applog.Audit(c, "sale.create", map[string]any{
		"id": s.ID, "product": s.ProductID, "qty": s.Quantity, "total": s.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(s)
}

// DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "sale", domain.ErrNotFound)
	}
	res, err := h.Sales.DeleteSale(c.UserContext(), id)
	if err != nil {
		return apiError(c, "sale", err)
	}
	if !res.StockRestored {
		applog.Warn(c, "sale.delete.restore_skipped", map[string]any{
			"id": res.Sale.ID, "product": res.Sale.ProductID, "qty": res.Sale.Quantity,
		})
	}
	applog.Audit(c, "sale.delete", map[string]any{"id": res.Sale.ID, "restored": res.StockRestored})
	return c.JSON(fiber.Map{
		"message":       "Sale deleted",
		"sale":          res.Sale,
		"stockRestored": res.StockRestored,
	})
}
