package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trapbite/internal/domain"
	applog "trapbite/internal/log"
	"trapbite/internal/services"
)

type ProductHandler struct {
	Products *services.ProductService
}

// GET /api/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.Products.List(c.UserContext(), parseSort(c, domain.DefaultProductSort))
	if err != nil {
		return apiError(c, "product", err)
	}
	return c.JSON(items)
}

// GET /api/products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "product", domain.ErrNotFound)
	}
	p, err := h.Products.Get(c.UserContext(), id)
	if err != nil {
		return apiError(c, "product", err)
	}
	return c.JSON(p)
}

// POST /api/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	p, err := h.Products.Create(c.UserContext(), in)
	if err != nil {
		return apiError(c, "product", err)
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID, "name": p.Name, "stock": p.Stock})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PATCH /api/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "product", domain.ErrNotFound)
	}
	var patch domain.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	p, err := h.Products.Update(c.UserContext(), id, patch)
	if err != nil {
		return apiError(c, "product", err)
	}
	applog.Audit(c, "product.update", map[string]any{"id": p.ID, "stock": p.Stock, "price": p.Price})
	return c.JSON(p)
}

// DELETE /api/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "product", domain.ErrNotFound)
	}
	p, err := h.Products.Delete(c.UserContext(), id)
	if err != nil {
		return apiError(c, "product", err)
	}
	applog.Audit(c, "product.delete", map[string]any{"id": p.ID, "name": p.Name})
	return c.JSON(fiber.Map{"message": "Product deleted", "product": p})
}
