package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "trapbite/internal/log"
	"trapbite/internal/services"
)

// publicPath lists what an anonymous visitor may reach.
func publicPath(p string) bool {
	switch {
	case p == "/login", p == "/healthz":
		return true
	case strings.HasPrefix(p, "/api/auth/"), strings.HasPrefix(p, "/static/"):
		return true
	}
	return false
}

// RequireSession gates everything except public paths behind a valid
// session cookie. API callers get 401 JSON; browsers go to /login.
func RequireSession(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if publicPath(c.Path()) {
			return c.Next()
		}
		sub, err := auth.CurrentSubject(c.Cookies(SessionCookie))
		if err != nil {
			if isAPI(c.Path()) {
				applog.Security(c, "access.denied", nil)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
			}
			return c.Redirect("/login")
		}
		c.Locals("subject", sub)
		return c.Next()
	}
}
