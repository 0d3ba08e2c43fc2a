package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/google/uuid"

	"storefront/internal/config"
	applog "storefront/internal/log"
)

const genericError = "Something went wrong. Please try again."

// ErrorHandler answers with an error envelope and never echoes internal
// error text for 5xx responses.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := genericError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code, msg = fe.Code, fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		applog.Error(c, "server.error", err, nil)
	}
	return fail(c, code, msg)
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg config.Config, d *Deps) *fiber.App {
	fc := fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    cfg.BodyLimit,
	}
	if cfg.TemplatesDir != "" {
		fc.Views = html.New(cfg.TemplatesDir, ".html")
	}
	app := fiber.New(fc)

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(helmet.New())
	if cfg.RateLimit > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate.limit.hit", nil)
				return fail(c, fiber.StatusTooManyRequests, "Rate limit exceeded, retry soon")
			},
		}))
	}

	Register(app, cfg, d)
	return app
}

// Register mounts the routes on app.
func Register(app *fiber.App, cfg config.Config, d *Deps) {
	adminOnly := RequireAdminKey(cfg.AdminKeyHash)

	app.Get("/", d.PageHandler.Home)

	products := app.Group("/products")
	products.Get("/", d.ProductHandler.List)
	products.Get("/:id", d.ProductHandler.Get)
	products.Post("/", adminOnly, d.ProductHandler.Create)
	products.Put("/:id", adminOnly, d.ProductHandler.Update)
	products.Delete("/:id", adminOnly, d.ProductHandler.Delete)

	carts := app.Group("/carts")
	carts.Get("/", d.CartHandler.List)
	carts.Get("/:id", d.CartHandler.Products)
	carts.Post("/", d.CartHandler.Create)
	carts.Post("/:cartId/product/:productId", d.CartHandler.AddProduct)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return fail(c, fiber.StatusNotFound, "Route not found")
	})
}
