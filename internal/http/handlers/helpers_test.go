package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/config"
	"storefront/internal/http/handlers"
	"storefront/internal/repos"
)

type testApp struct {
	app     *fiber.App
	deps    *handlers.Deps
	backend repos.Backend
}

// newTestApp wires the real routes over a file backend in a temp dir.
func newTestApp(t *testing.T, tweak func(*config.Config)) *testApp {
	t.Helper()
	cfg := testConfig(t)
	if tweak != nil {
		tweak(&cfg)
	}
	backend, err := repos.NewFileBackend(cfg.DataDir)
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	return withBackend(t, cfg, backend)
}

func testConfig(t *testing.T) config.Config {
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.TemplatesDir = "../../../web/templates"
	cfg.RateLimit = 0
	return cfg
}

func withBackend(t *testing.T, cfg config.Config, backend repos.Backend) *testApp {
	t.Helper()
	deps := handlers.NewDeps(backend, nil)
	return &testApp{app: handlers.NewApp(cfg, deps), deps: deps, backend: backend}
}

// do sends a request and decodes the JSON envelope.
func (a *testApp) do(t *testing.T, method, path, body string, headers ...string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	env := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("%s %s: non-json body %q", method, path, raw)
		}
	}
	return resp.StatusCode, env
}

// brokenBackend reads from the wrapped backend but fails every write.
type brokenBackend struct{ repos.Backend }

func (brokenBackend) Write(context.Context, string, []byte) error { return errors.New("disk full") }

type lockedBuf struct {
	b  *bytes.Buffer
	mu *sync.Mutex
}

func (l *lockedBuf) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.b.Write(p)
}

type logEntry struct {
	Level  string         `json:"level"`
	Action string         `json:"action"`
	Fields map[string]any `json:"fields"`
}

func captureLogs(t *testing.T, fn func()) []logEntry {
	t.Helper()
	var buf bytes.Buffer
	var mu sync.Mutex
	oldW := log.Writer()
	oldFlags := log.Flags()
	log.SetOutput(&lockedBuf{b: &buf, mu: &mu})
	log.SetFlags(0)
	defer func() {
		log.SetOutput(oldW)
		log.SetFlags(oldFlags)
	}()

	fn()

	var entries []logEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var e logEntry
		if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &e); err == nil && e.Action != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

func hasAction(entries []logEntry, action string) bool {
	for _, e := range entries {
		if e.Action == action {
			return true
		}
	}
	return false
}

const productA = `{"title":"A","description":"d","code":"c1","price":10,"status":true,"stock":5,"category":"x"}`
