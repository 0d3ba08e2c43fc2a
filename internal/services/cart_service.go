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

var ErrCartNotFound = errors.New("cart not found")

// CartService owns the cart collection. Product ids in carts are not checked
// against the catalog.
type CartService struct {
	mu     sync.Mutex
	Carts  *repos.CartRepo
	IDs    *ids.Generator
	Events events.Publisher
}

func NewCartService(carts *repos.CartRepo, gen *ids.Generator, pub events.Publisher) *CartService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CartService{Carts: carts, IDs: gen, Events: pub}
}

func (s *CartService) List(ctx context.Context) ([]domain.Cart, error) {
	return s.Carts.Load(ctx)
}

// Products returns the line items of one cart.
func (s *CartService) Products(ctx context.Context, cartID int64) ([]domain.CartItem, error) {
	carts, err := s.Carts.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOfCart(carts, cartID)
	if i < 0 {
		return nil, ErrCartNotFound
	}
	if carts[i].Products == nil {
		return []domain.CartItem{}, nil
	}
	return carts[i].Products, nil
}

func (s *CartService) Create(ctx context.Context, items []domain.CartItem) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts, err := s.Carts.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	for _, c := range carts {
		s.IDs.Observe(c.ID)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	cart := domain.Cart{ID: s.IDs.Next(), Products: items}
	carts = append(carts, cart)
	if err := s.Carts.Save(ctx, carts); err != nil {
		return domain.Cart{}, err
	}
	s.publish(ctx, events.CartCreated, cart.ID)
	return cart, nil
}

// AddProduct appends a line for productID or increments the existing one by qty.
func (s *CartService) AddProduct(ctx context.Context, cartID, productID int64, qty float64) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts, err := s.Carts.Load(ctx)
	if err != nil {
		return domain.Cart{}, err
	}
	i := indexOfCart(carts, cartID)
	if i < 0 {
		return domain.Cart{}, ErrCartNotFound
	}
	cart := &carts[i]
	found := false
	for j := range cart.Products {
		if cart.Products[j].ProductID == productID {
			cart.Products[j].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		cart.Products = append(cart.Products, domain.CartItem{ProductID: productID, Quantity: qty})
	}
	if err := s.Carts.Save(ctx, carts); err != nil {
		return domain.Cart{}, err
	}
	s.publish(ctx, events.CartUpdated, cartID)
	return *cart, nil
}

func (s *CartService) publish(ctx context.Context, typ string, id int64) {
	if err := s.Events.Publish(ctx, events.New(typ, id)); err != nil {
		applog.Error(nil, "events.publish.fail", err, applog.Fields{"type": typ, "entity_id": id})
	}
}

func indexOfCart(carts []domain.Cart, id int64) int {
	for i, c := range carts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
