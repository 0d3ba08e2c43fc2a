package services

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/ids"
	applog "storefront/internal/log"
	"storefront/internal/repos"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService owns the product collection. Every mutation loads the whole
// collection, changes it in memory and saves it back under mu.
type CatalogService struct {
	mu     sync.Mutex
	Prods  *repos.ProductRepo
	IDs    *ids.Generator
	Events events.Publisher
}

func NewCatalogService(prods *repos.ProductRepo, gen *ids.Generator, pub events.Publisher) *CatalogService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CatalogService{Prods: prods, IDs: gen, Events: pub}
}

// List returns the first limit products, or all of them when limit <= 0.
func (s *CatalogService) List(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := s.Prods.Load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (domain.Product, error) {
	products, err := s.Prods.Load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	i := indexOfProduct(products, id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	return products[i], nil
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Prods.Load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	for _, existing := range products {
		s.IDs.Observe(existing.ID)
	}
	p.ID = s.IDs.Next()
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	products = append(products, p)
	if err := s.Prods.Save(ctx, products); err != nil {
		return domain.Product{}, err
	}
	s.publish(ctx, events.ProductCreated, p.ID)
	return p, nil
}

// Replace overwrites the stored product, keeping its id.
func (s *CatalogService) Replace(ctx context.Context, id int64, p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Prods.Load(ctx)
	if err != nil {
		return domain.Product{}, err
	}
	i := indexOfProduct(products, id)
	if i < 0 {
		return domain.Product{}, ErrProductNotFound
	}
	p.ID = id
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	products[i] = p
	if err := s.Prods.Save(ctx, products); err != nil {
		return domain.Product{}, err
	}
	s.publish(ctx, events.ProductUpdated, id)
	return p, nil
}

// Delete removes the first product with the given id.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.Prods.Load(ctx)
	if err != nil {
		return err
	}
	i := indexOfProduct(products, id)
	if i < 0 {
		return ErrProductNotFound
	}
	products = append(products[:i], products[i+1:]...)
	if err := s.Prods.Save(ctx, products); err != nil {
		return err
	}
	s.publish(ctx, events.ProductDeleted, id)
	return nil
}

func (s *CatalogService) publish(ctx context.Context, typ string, id int64) {
	if err := s.Events.Publish(ctx, events.New(typ, id)); err != nil {
		applog.Error(nil, "events.publish.fail", err, applog.Fields{"type": typ, "entity_id": id})
	}
}

func indexOfProduct(products []domain.Product, id int64) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
