package handlers

import (
	"storefront/internal/events"
	"storefront/internal/ids"
	"storefront/internal/repos"
	"storefront/internal/services"
)

type Deps struct {
	Catalog *services.CatalogService
	Carts   *services.CartService

	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	PageHandler    *CatalogPageHandler
}

func NewDeps(backend repos.Backend, pub events.Publisher) *Deps {
	gen := ids.NewGenerator()
	catalogSvc := services.NewCatalogService(repos.NewProductRepo(backend), gen, pub)
	cartSvc := services.NewCartService(repos.NewCartRepo(backend), gen, pub)

	return &Deps{
		Catalog:        catalogSvc,
		Carts:          cartSvc,
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		PageHandler:    &CatalogPageHandler{Catalog: catalogSvc},
	}
}
