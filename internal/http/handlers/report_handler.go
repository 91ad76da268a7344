package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "trapbite/internal/log"
	"trapbite/internal/services"
	"trapbite/internal/store"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// GET /api/reports/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	sum, err := h.Reports.Summary(c.UserContext())
	if err != nil {
		return apiError(c, "report", err)
	}
	return c.JSON(sum)
}

// GET /
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	sum, err := h.Reports.Summary(c.UserContext())
	if err != nil {
		applog.Error(c, "dashboard.summary.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	return render(c, "dashboard", fiber.Map{"Summary": sum})
}

type HealthHandler struct {
	Store  store.Store
	Driver string
}

// GET /healthz
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		applog.Error(c, "health.store.down", err, nil)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"ok": false, "store": h.Driver})
	}
	return c.JSON(fiber.Map{"ok": true, "store": h.Driver})
}
