package handlers

import (
	"github.com/gofiber/fiber/v2"

	"trapbite/internal/domain"
	applog "trapbite/internal/log"
	"trapbite/internal/services"
)

type DebtHandler struct {
	Debts *services.DebtService
}

// GET /api/debts?status=Pending|Paid
func (h *DebtHandler) List(c *fiber.Ctx) error {
	items, err := h.Debts.List(c.UserContext(), parseSort(c, domain.DefaultDatedSort), c.Query("status"))
	if err != nil {
		return apiError(c, "debt", err)
	}
	return c.JSON(items)
}

func (h *DebtHandler) Get(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "debt", domain.ErrNotFound)
	}
	d, err := h.Debts.Get(c.UserContext(), id)
	if err != nil {
		return apiError(c, "debt", err)
	}
	return c.JSON(d)
}

func (h *DebtHandler) Create(c *fiber.Ctx) error {
	var in domain.DebtInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	d, err := h.Debts.Create(c.UserContext(), in)
	if err != nil {
		return apiError(c, "debt", err)
	}
	applog.Audit(c, "debt.create", map[string]any{"id": d.ID, "amount": d.Amount, "status": d.Status})
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *DebtHandler) Update(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "debt", domain.ErrNotFound)
	}
	var patch domain.DebtPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	d, err := h.Debts.Update(c.UserContext(), id, patch)
	if err != nil {
		return apiError(c, "debt", err)
	}
	applog.Audit(c, "debt.update", map[string]any{"id": d.ID, "status": d.Status})
	return c.JSON(d)
}

func (h *DebtHandler) Delete(c *fiber.Ctx) error {
	id, ok := recordID(c)
	if !ok {
		return apiError(c, "debt", domain.ErrNotFound)
	}
	d, err := h.Debts.Delete(c.UserContext(), id)
	if err != nil {
		return apiError(c, "debt", err)
	}
	applog.Audit(c, "debt.delete", map[string]any{"id": d.ID})
	return c.JSON(fiber.Map{"message": "Debt deleted", "debt": d})
}
