package handlers

import (
	applog "storefront/internal/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const AdminKeyHeader = "X-Admin-Key"

// RequireAdminKey guards catalog mutations with a shared key checked against
// a bcrypt hash. An empty hash disables the guard.
func RequireAdminKey(hash string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if hash == "" {
			return c.Next()
		}
		key := c.Get(AdminKeyHeader)
		if key == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) != nil {
			applog.Security(c, "access.denied.admin", applog.Fields{"key_present": key != ""})
			return fail(c, fiber.StatusUnauthorized, "Admin key required")
		}
		return c.Next()
	}
}

// HashAdminKey returns the bcrypt hash to configure as ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
