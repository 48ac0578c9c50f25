package sse

import (
	"context"

	"github.com/osse101/PetalGarden_Go/internal/event"
	"github.com/osse101/PetalGarden_Go/internal/logger"
)

// Bridge forwards every domain event on the bus to the hub. Payloads are
// broadcast as they are; every payload type carries JSON tags.
type Bridge struct {
	hub *Hub
	sub event.Subscription
}

// NewBridge creates a bridge. Nothing flows until Subscribe.
func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

// Subscribe attaches the bridge to bus
func (b *Bridge) Subscribe(ctx context.Context, bus event.Bus) {
	if b.sub != nil {
		return
	}
	b.sub = bus.SubscribeAll(b.handle)
	logger.FromContext(ctx).Info(LogMsgBridgeRegistered)
}

// Unsubscribe detaches the bridge
func (b *Bridge) Unsubscribe() {
	if b.sub != nil {
		b.sub.Unsubscribe()
		b.sub = nil
	}
}

func (b *Bridge) handle(_ context.Context, evt event.Event) error {
	b.hub.Broadcast(string(evt.Type), evt.Payload)
	return nil
}
