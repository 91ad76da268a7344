package handlers

import "github.com/gofiber/fiber/v2"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if sub, ok := c.Locals("subject").(string); ok && sub != "" {
		data["User"] = sub
	}
	return c.Render(tmpl, data)
}
