// Package ids hands out integer identifiers derived from the wall clock.
package ids

import (
	"sync"
	"time"
)

// Generator returns millisecond timestamps, bumped by one whenever the clock
// has not advanced past the last id handed out.
type Generator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Observe raises the floor so ids already persisted are never reissued.
func (g *Generator) Observe(id int64) {
	g.mu.Lock()
	if id > g.last {
		g.last = id
	}
	g.mu.Unlock()
}

func (g *Generator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
