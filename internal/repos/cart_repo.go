package repos

import "storefront/internal/domain"

const CartsCollection = "carts"

type CartRepo = Collection[domain.Cart]

func NewCartRepo(b Backend) *CartRepo {
	return NewCollection[domain.Cart](b, CartsCollection)
}
