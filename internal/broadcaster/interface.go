package broadcaster

//go:generate mockgen -package=mocks -destination=mocks/mock_broadcaster.go github.com/pigparty/server/internal/broadcaster Broadcaster,Subscription

import (
	"context"
)

// Broadcaster fans events out to every process subscribed to a room's
// channel. Delivery is at-most-once best-effort; there is no retry or
// acknowledgement.
type Broadcaster interface {
	// Publish delivers an event to every subscriber of the room's channel
	Publish(ctx context.Context, roomID string, event *Event) error

	// Subscribe opens a subscription to the room's channel
	Subscribe(ctx context.Context, roomID string) (Subscription, error)
}

// Subscription is a live feed of a single room's events
type Subscription interface {
	// Events returns the channel events arrive on. The channel is closed
	// when the subscription is closed.
	Events() <-chan *Event

	// Close tears down the subscription
	Close() error
}
