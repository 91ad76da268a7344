package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"trapbite/internal/domain"
	applog "trapbite/internal/log"
	"trapbite/internal/services"
)

// apiError maps service errors onto status codes. kind names the record in
// not-found messages ("product", "sale", ...).
func apiError(c *fiber.Ctx, kind string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error(), "problems": ve.Problems})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": kind + " not found"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	default:
		applog.Error(c, kind+".fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func badBody(c *fiber.Ctx, err error) error {
	applog.Info(c, "request.body.invalid", map[string]any{"reason": err.Error()})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}

// ErrorHandler is the app-wide fallback for errors no handler mapped.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Something went wrong. Please try again."
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
		msg = "Something went wrong. Please try again."
	}
	if isAPI(c.Path()) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// NotFound terminates the middleware chain for unknown routes.
func NotFound(c *fiber.Ctx) error {
	if isAPI(c.Path()) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "route not found"})
	}
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
}
