package handlers_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/config"
)

// burst hits return 429
func TestRateLimits(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.RateLimit = 3 })

	for i := 0; i < 4; i++ {
		code, env := a.do(t, "GET", "/products", "")
		if i < 3 && code == http.StatusTooManyRequests {
			t.Fatalf("hit rate limit too early at %d", i)
		}
		if i == 3 && (code != http.StatusTooManyRequests || env["status"] != "error") {
			t.Fatalf("expected 429 envelope after limit, got %d %v", code, env)
		}
	}
}

// oversized POST rejected with 413
func TestBodySizeLimit(t *testing.T) {
	a := newTestApp(t, func(c *config.Config) { c.BodyLimit = 1 << 10 })

	oversize := `{"title":"` + string(bytes.Repeat([]byte("A"), 2<<10)) + `"}`
	req := httptest.NewRequest("POST", "/products", strings.NewReader(oversize))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	// fiber may refuse the body before a response is produced
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 413 for oversize, got %d body=%s", resp.StatusCode, string(body))
	}
}
