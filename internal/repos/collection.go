package repos

import (
	"context"
	"encoding/json"
	"fmt"
)

// Backend stores whole collections as opaque JSON documents.
// Read returns nil, nil for a collection that was never written.
type Backend interface {
	Read(ctx context.Context, collection string) ([]byte, error)
	Write(ctx context.Context, collection string, body []byte) error
}

// Collection is the load-all/save-all view of one named collection.
type Collection[T any] struct {
	backend Backend
	name    string
}

func NewCollection[T any](b Backend, name string) *Collection[T] {
	return &Collection[T]{backend: b, name: name}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	body, err := c.backend.Read(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.name, err)
	}
	out := []T{}
	if len(body) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	return out, nil
}

func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	if err := c.backend.Write(ctx, c.name, body); err != nil {
		return fmt.Errorf("write %s: %w", c.name, err)
	}
	return nil
}
