package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"trapbite/internal/config"
	applog "trapbite/internal/log"
	"trapbite/internal/services"
	"trapbite/internal/store"
)

// NewApp builds the fiber app with middleware and every route mounted.
func NewApp(st store.Store, auth *services.AuthService, cfg config.Config, views fiber.Views) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views,
		ErrorHandler: ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(applog.Access())
	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(RequireSession(auth))

	if cfg.StaticDir != "" {
		app.Static("/static", cfg.StaticDir)
	}

	deps := NewDeps(st, cfg, auth)
	Mount(app, deps, cfg)

	app.Use(NotFound)
	return app
}

// Mount registers the routes on app.
func Mount(app *fiber.App, deps *Deps, cfg config.Config) {
	loginMax := cfg.LoginRateLimit
	if loginMax <= 0 {
		loginMax = 20
	}
	loginLimiter := limiter.New(limiter.Config{
		Max:        loginMax,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	})

	// Pages
	app.Get("/", deps.ReportHandler.Dashboard)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Get("/healthz", deps.HealthHandler.Check)

	api := app.Group("/api")

	// Auth
	api.Post("/auth/login", loginLimiter, deps.AuthHandler.Login)
	api.Post("/auth/logout", deps.AuthHandler.Logout)

	// Products
	api.Get("/products", deps.ProductHandler.List)
	api.Post("/products", deps.ProductHandler.Create)
	api.Get("/products/:id", deps.ProductHandler.Get)
	api.Patch("/products/:id", deps.ProductHandler.Update)
	api.Put("/products/:id", deps.ProductHandler.Update)
	api.Delete("/products/:id", deps.ProductHandler.Delete)

	// Sales
	api.Get("/sales", deps.SaleHandler.List)
	api.Post("/sales", deps.SaleHandler.Create)
	api.Get("/sales/:id", deps.SaleHandler.Get)
	api.Delete("/sales/:id", deps.SaleHandler.Delete)

	// Expenses
	api.Get("/expenses", deps.ExpenseHandler.List)
	api.Post("/expenses", deps.ExpenseHandler.Create)
	api.Get("/expenses/:id", deps.ExpenseHandler.Get)
	api.Patch("/expenses/:id", deps.ExpenseHandler.Update)
	api.Put("/expenses/:id", deps.ExpenseHandler.Update)
	api.Delete("/expenses/:id", deps.ExpenseHandler.Delete)

	// Debts
	api.Get("/debts", deps.DebtHandler.List)
	api.Post("/debts", deps.DebtHandler.Create)
	api.Get("/debts/:id", deps.DebtHandler.Get)
	api.Patch("/debts/:id", deps.DebtHandler.Update)
	api.Put("/debts/:id", deps.DebtHandler.Update)
	api.Delete("/debts/:id", deps.DebtHandler.Delete)

	// Reports
	api.Get("/reports/summary", deps.ReportHandler.Summary)
}
