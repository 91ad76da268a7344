package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	applog "trapbite/internal/log"
	"trapbite/internal/services"
	"trapbite/internal/validate"
)

const SessionCookie = "session"

type AuthHandler struct {
	Auth *services.AuthService
	// Secure marks the session cookie HTTPS-only.
	Secure bool
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (h *AuthHandler) setSession(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Secure,
	})
}

func (h *AuthHandler) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   h.Secure,
	})
}

// GET /login
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	if _, err := h.Auth.CurrentSubject(c.Cookies(SessionCookie)); err == nil {
		return c.Redirect("/")
	}
	return render(c, "login", fiber.Map{"Err": ""})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	email, ok := validate.Email(req.Email)
	if !ok || req.Password == "" {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": services.ErrBadCreds.Error()})
	}

	token, exp, err := h.Auth.Login(email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCreds) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		}
		return apiError(c, "auth", err)
	}
	h.setSession(c, token, exp)
	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return c.JSON(fiber.Map{"message": "Logged in", "expiresAt": exp})
}

// POST /api/auth/logout clears the cookie whether or not a session exists.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tok := c.Cookies(SessionCookie)
	if err := h.Auth.Logout(tok); err != nil {
		applog.Error(c, "auth.logout.revoke", err, nil)
	}
	h.clearSession(c)
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"message": "Logged out"})
}
