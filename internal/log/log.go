package log

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Fields carries event specific key/values.
type Fields map[string]any

type entry struct {
	TS     string `json:"ts"`
	Level  string `json:"level"`
	ReqID  string `json:"req_id,omitempty"`
	IP     string `json:"ip,omitempty"`
	Method string `json:"method,omitempty"`
	Path   string `json:"path,omitempty"`
	Action string `json:"action,omitempty"`
	Status int    `json:"status,omitempty"`
	Err    string `json:"err,omitempty"`
	Fields Fields `json:"fields,omitempty"`
}

// request copies what the log needs from c. c is nil outside a request.
func (e *entry) request(c *fiber.Ctx) {
	if c == nil {
		return
	}
	e.IP, e.Method, e.Path = c.IP(), c.Method(), c.Path()
	e.Status = c.Response().StatusCode()
	e.ReqID, _ = c.Locals("requestid").(string)
}

func emit(level string, c *fiber.Ctx, action string, err error, fields Fields) {
	e := entry{
		TS:     time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		Action: action,
		Fields: fields,
	}
	e.request(c)
	if err != nil {
		e.Err = err.Error()
	}
	b, mErr := json.Marshal(e)
	if mErr != nil {
		// a field value json cannot encode; keep the event, drop the fields
		e.Fields = Fields{"unencodable_fields": mErr.Error()}
		b, _ = json.Marshal(e)
	}
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields Fields) { emit("info", c, action, nil, fields) }

// Audit records a committed change to products or carts.
func Audit(c *fiber.Ctx, action string, fields Fields) {
	emit("audit", c, action, nil, fields)
}

// Security records rejected or suspicious input.
func Security(c *fiber.Ctx, action string, fields Fields) { emit("warn", c, action, nil, fields) }

func Error(c *fiber.Ctx, action string, err error, fields Fields) {
	emit("error", c, action, err, fields)
}

// Tee duplicates log output into the file at path (append mode).
// Callers close the returned file on shutdown.
func Tee(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stdout, f))
	return f, nil
}
