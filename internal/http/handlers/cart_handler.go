package handlers

import (
	"errors"

	applog "storefront/internal/log"
	"storefront/internal/services"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /carts
func (h *CartHandler) List(c *fiber.Ctx) error {
	carts, err := h.Cart.List(c.UserContext())
	if err != nil {
		applog.Error(c, "cart.list.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not load carts")
	}
	return success(c, fiber.StatusOK, fiber.Map{"carts": carts})
}

// GET /carts/:id
func (h *CartHandler) Products(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Cart not found")
	}
	items, err := h.Cart.Products(c.UserContext(), id)
	if errors.Is(err, services.ErrCartNotFound) {
		return fail(c, fiber.StatusNotFound, "Cart not found")
	}
	if err != nil {
		applog.Error(c, "cart.get.fail", err, applog.Fields{"cart_id": id})
		return fail(c, fiber.StatusInternalServerError, "Could not load carts")
	}
	return success(c, fiber.StatusOK, fiber.Map{"products": items})
}

// POST /carts
func (h *CartHandler) Create(c *fiber.Ctx) error {
	raw, err := decodeObject(c)
	if err != nil {
		return rejectInvalid(c, "cart", err)
	}
	items, err := validate.CartItems(raw)
	if err != nil {
		return rejectInvalid(c, "cart", err)
	}
	cart, err := h.Cart.Create(c.UserContext(), items)
	if err != nil {
		applog.Error(c, "cart.create.fail", err, nil)
		return fail(c, fiber.StatusInternalServerError, "Could not add cart")
	}
	applog.Audit(c, "cart.create", applog.Fields{"cart_id": cart.ID, "lines": len(cart.Products)})
	return success(c, fiber.StatusCreated, fiber.Map{"message": "Cart added", "cart": cart})
}

// POST /carts/:cartId/product/:productId
func (h *CartHandler) AddProduct(c *fiber.Ctx) error {
	cartID, ok1 := validate.ID(c.Params("cartId"))
	productID, ok2 := validate.ID(c.Params("productId"))
	if !ok1 || !ok2 {
		return rejectInvalid(c, "cart", validate.ErrInvalidIDs)
	}

	// the cart must exist before the quantity is looked at
	if _, err := h.Cart.Products(c.UserContext(), cartID); err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return fail(c, fiber.StatusNotFound, "Cart not found")
		}
		applog.Error(c, "cart.get.fail", err, applog.Fields{"cart_id": cartID})
		return fail(c, fiber.StatusInternalServerError, "Could not update cart")
	}

	raw, err := decodeObject(c)
	if err != nil {
		return rejectInvalid(c, "cart", err)
	}
	qty, err := validate.Quantity(raw["quantity"])
	if err != nil {
		return rejectInvalid(c, "cart", err)
	}

	_, err = h.Cart.AddProduct(c.UserContext(), cartID, productID, qty)
	if errors.Is(err, services.ErrCartNotFound) {
		return fail(c, fiber.StatusNotFound, "Cart not found")
	}
	if err != nil {
		applog.Error(c, "cart.update.fail", err, applog.Fields{"cart_id": cartID})
		return fail(c, fiber.StatusInternalServerError, "Could not update cart")
	}
	applog.Audit(c, "cart.product.add", applog.Fields{"cart_id": cartID, "product_id": productID, "qty": qty})
	return success(c, fiber.StatusOK, fiber.Map{"message": "Product updated in cart"})
}
