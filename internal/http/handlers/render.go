package handlers

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var errBadJSON = errors.New("invalid json body")

// success writes {"status":"success", ...data}.
func success(c *fiber.Ctx, code int, data fiber.Map) error {
	out := fiber.Map{"status": "success"}
	for k, v := range data {
		out[k] = v
	}
	return c.Status(code).JSON(out)
}

// fail writes {"status":"error","message":msg}.
func fail(c *fiber.Ctx, code int, msg string) error {
	return c.Status(code).JSON(fiber.Map{"status": "error", "message": msg})
}

// decodeObject reads the request body as a JSON object. An empty body is an
// empty object.
func decodeObject(c *fiber.Ctx) (map[string]any, error) {
	raw := c.Body()
	if strings.TrimSpace(string(raw)) == "" {
		return map[string]any{}, nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, errBadJSON
	}
	return obj, nil
}

// page renders an HTML view, falling back to JSON when no view engine is set.
func page(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if rid, ok := c.Locals("requestid").(string); ok {
		data["RequestID"] = rid
	}
	if c.App().Config().Views == nil {
		return success(c, fiber.StatusOK, data)
	}
	return c.Render(tmpl, data)
}
