package services

import (
	"context"

	"storefront/internal/domain"
	applog "storefront/internal/log"
)

var demoProducts = []domain.Product{
	{Title: "Game Boy Color", Description: "Handheld console, tested and cleaned", Code: "GBC-001", Price: 129.99, Status: true, Stock: 8, Category: "consoles", Thumbnails: []string{"products/gbc-001/main.jpg"}},
	{Title: "NES Console", Description: "Classic 8-bit console", Code: "NES-001", Price: 199, Status: true, Stock: 5, Category: "consoles", Thumbnails: []string{"products/nes-001/main.jpg"}},
	{Title: "Philco 1939", Description: "Vintage vacuum tube radio", Code: "RADIO-001", Price: 349.5, Status: true, Stock: 2, Category: "radios", Thumbnails: []string{}},
}

// SeedCatalog inserts the demo products when the catalog is empty.
// Safe to run on every start; it returns how many products were added.
func SeedCatalog(ctx context.Context, catalog *CatalogService) (int, error) {
	existing, err := catalog.List(ctx, 0)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	applog.Info(nil, "seed.products", applog.Fields{"count": len(demoProducts)})
	for i, p := range demoProducts {
		if _, err := catalog.Create(ctx, p); err != nil {
			return i, err
		}
	}
	return len(demoProducts), nil
}
