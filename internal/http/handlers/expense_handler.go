package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trapbite/internal/domain"
	applog "trapbite/internal/log"
	"trapbite/internal/services"
)

type ExpenseHandler struct {
	Expenses *services.ExpenseService
}

func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	items, err := h.Expenses.List(c.UserContext(), parseSort(c, domain.DefaultDatedSort))
	if err != nil {
		return apiError(c, "expense", err)
	}
	return c.JSON(items)
}

func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "expense", domain.ErrNotFound)
	}
	e, err := h.Expenses.Get(c.UserContext(), id)
	if err != nil {
		return apiError(c, "expense", err)
	}
	return c.JSON(e)
}

func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	var in domain.ExpenseInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	e, err := h.Expenses.Create(c.UserContext(), in)
	if err != nil {
		return apiError(c, "expense", err)
	}
	applog.Audit(c, "expense.create", map[string]any{"id": e.ID, "amount": e.Amount})
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "expense", domain.ErrNotFound)
	}
	var patch domain.ExpensePatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	e, err := h.Expenses.Update(c.UserContext(), id, patch)
	if err != nil {
		return apiError(c, "expense", err)
	}
	applog.Audit(c, "expense.update", map[string]any{"id": e.ID, "amount": e.Amount})
	return c.JSON(e)
}

func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "expense", domain.ErrNotFound)
	}
	e, err := h.Expenses.Delete(c.UserContext(), id)
	if err != nil {
		return apiError(c, "expense", err)
	}
	applog.Audit(c, "expense.delete", map[string]any{"id": e.ID})
	return c.JSON(fiber.Map{"message": "Expense deleted", "expense": e})
}
