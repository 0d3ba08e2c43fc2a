package handlers

import (
	"sort"
	"strings"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CatalogPageHandler serves the browsable HTML view of the product list.
type CatalogPageHandler struct {
	Catalog *services.CatalogService
}

// GET /?category=x
func (h *CatalogPageHandler) Home(c *fiber.Ctx) error {
	products, err := h.Catalog.List(c.UserContext(), 0)
	if err != nil {
		applog.Error(c, "catalog.page.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not load products")
	}

	category := strings.TrimSpace(c.Query("category"))
	shown := make([]domain.Product, 0, len(products))
	seen := map[string]bool{}
	var categories []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
		if category == "" || strings.EqualFold(p.Category, category) {
			shown = append(shown, p)
		}
	}
	sort.Strings(categories)

	return page(c, "catalog", fiber.Map{
		"Category":   category,
		"Categories": categories,
		"Products":   shown,
		"Count":      len(shown),
	})
}
