package handlers

import (
	"errors"

	applog "storefront/internal/log"
	"storefront/internal/validate"

	"github.com/gofiber/fiber/v2"
)

var validationMessages = []struct {
	err error
	msg string
}{
	{validate.ErrMissingFields, "Missing required fields."},
	{validate.ErrInvalidTypes, "Invalid or incorrect data types."},
	{validate.ErrProductsNotArray, "Products field is required and must be an array"},
	{validate.ErrProductIDs, "All product IDs must be integers"},
	{validate.ErrNegativeQuantity, "All product quantities must be 0 or greater"},
	{validate.ErrInvalidIDs, "Cart ID and Product ID must be valid integers"},
	{validate.ErrInvalidQuantity, "Quantity must be a number greater than 0"},
	{errBadJSON, "Invalid JSON body"},
}

func validationMessage(err error) string {
	for _, m := range validationMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "Invalid request"
}

// rejectInvalid logs a validation failure and answers 400.
func rejectInvalid(c *fiber.Ctx, resource string, err error) error {
	applog.Security(c, "validation.fail", applog.Fields{"resource": resource, "reason": err.Error()})
	return fail(c, fiber.StatusBadRequest, validationMessage(err))
}
