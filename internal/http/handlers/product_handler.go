package handlers

import (
	"errors"

	"storefront/internal/domain"
	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /products?limit=N
func (h *ProductHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)
	products, err := h.Catalog.List(c.UserContext(), limit)
	if err != nil {
		applog.Error(c, "product.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not load products")
	}
	return success(c, fiber.StatusOK, fiber.Map{"products": products})
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	p, err := h.Catalog.Get(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		applog.Error(c, "product.get.fail", err, applog.Fields{"product_id": id})
		return fail(c, fiber.StatusInternalServerError, "Could not load products")
	}
	return success(c, fiber.StatusOK, fiber.Map{"product": p})
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	in, err := bindProduct(c)
	if err != nil {
		return rejectInvalid(c, "product", err)
	}
	p, err := h.Catalog.Create(c.UserContext(), in)
	if err != nil {
		applog.Error(c, "product.create.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not add product")
	}
	applog.Audit(c, "product.create", applog.Fields{"product_id": p.ID, "code": p.Code})
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Product added", "product": p})
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, idOK := validate.ID(c.Params("id"))
	in, err := bindProduct(c)
	if err != nil {
		return rejectInvalid(c, "product", err)
	}
	if !idOK {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	_, err = h.Catalog.Replace(c.UserContext(), id, in)
	if errors.Is(err, services.ErrProductNotFound) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		applog.Error(c, "product.update.fail", err, applog.Fields{"product_id": id})
		return fail(c, fiber.StatusInternalServerError, "Could not update product")
	}
	applog.Audit(c, "product.update", applog.Fields{"product_id": id})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Product updated"})
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	err := h.Catalog.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return fail(c, fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		applog.Error(c, "product.delete.fail", err, applog.Fields{"product_id": id})
		return fail(c, fiber.StatusInternalServerError, "Could not delete product")
	}
	applog.Audit(c, "product.delete", applog.Fields{"product_id": id})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Product deleted"})
}

func bindProduct(c *fiber.Ctx) (domain.Product, error) {
	raw, err := decodeObject(c)
	if err != nil {
		return domain.Product{}, err
	}
	return validate.Product(raw)
}
