package repos

import "storefront/internal/domain"

const ProductsCollection = "products"

type ProductRepo = Collection[domain.Product]

func NewProductRepo(b Backend) *ProductRepo {
	return NewCollection[domain.Product](b, ProductsCollection)
}
