package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"trapbite/internal/domain"
	"trapbite/internal/validate"
)

// parseSort reads ?sort=<field>&order=asc|desc. Field names are checked
// against a whitelist by the store.
func parseSort(c *fiber.Ctx, def domain.Sort) domain.Sort {
	field := strings.TrimSpace(c.Query("sort"))
	order := strings.ToLower(strings.TrimSpace(c.Query("order")))
	if field == "" {
		if order != "" {
			def.Desc = order == "desc"
		}
		return def
	}
	return domain.Sort{Field: field, Desc: order == "desc"}
}

// recordID returns the :id param, or false when it cannot name a record.
func recordID(c *fiber.Ctx) (string, bool) {
	return validate.ID(c.Params("id"))
}
