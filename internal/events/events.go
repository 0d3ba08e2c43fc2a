package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	ProductCreated = "product.created"
	ProductUpdated = "product.updated"
	ProductDeleted = "product.deleted"
	CartCreated    = "cart.created"
	CartUpdated    = "cart.updated"
)

// Event announces a committed change to a product or cart.
type Event struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	EntityID int64     `json:"entityId"`
	At       time.Time `json:"at"`
}

func New(typ string, entityID int64) Event {
	return Event{ID: uuid.NewString(), Type: typ, EntityID: entityID, At: time.Now().UTC()}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
