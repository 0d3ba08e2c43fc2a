package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func capture(t *testing.T, fn func()) []map[string]any {
	t.Helper()
	var buf bytes.Buffer
	oldW := stdlog.Writer()
	oldFlags := stdlog.Flags()
	stdlog.SetOutput(&buf)
	stdlog.SetFlags(0)
	defer func() {
		stdlog.SetOutput(oldW)
		stdlog.SetFlags(oldFlags)
	}()

	fn()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("non-json log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLevelsAndFields(t *testing.T) {
	entries := capture(t, func() {
		Audit(nil, "product.create", Fields{"product_id": 7})
		Error(nil, "store.write.fail", errors.New("disk full"), nil)
		Security(nil, "validation.fail", Fields{"field": "price"})
	})
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}
	if entries[0]["level"] != "audit" || entries[0]["action"] != "product.create" {
		t.Fatalf("bad audit entry: %v", entries[0])
	}
	if entries[1]["level"] != "error" || entries[1]["err"] != "disk full" {
		t.Fatalf("bad error entry: %v", entries[1])
	}
	if entries[2]["level"] != "warn" {
		t.Fatalf("security entries are warn level: %v", entries[2])
	}
}

func TestUnencodableFieldsKeepEvent(t *testing.T) {
	entries := capture(t, func() {
		Info(nil, "odd.fields", Fields{"ch": make(chan int)})
	})
	if len(entries) != 1 || entries[0]["action"] != "odd.fields" {
		t.Fatalf("event lost: %v", entries)
	}
	fields, _ := entries[0]["fields"].(map[string]any)
	if _, ok := fields["unencodable_fields"]; !ok {
		t.Fatalf("expected encode error in fields, got %v", entries[0])
	}
}

func TestTeeWritesFile(t *testing.T) {
	oldW := stdlog.Writer()
	defer stdlog.SetOutput(oldW)

	path := filepath.Join(t.TempDir(), "app.log")
	f, err := Tee(path)
	if err != nil {
		t.Fatal(err)
	}
	Audit(nil, "cart.create", Fields{"cart_id": 1})
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"action":"cart.create"`) {
		t.Fatalf("log file missing entry: %s", raw)
	}
}
