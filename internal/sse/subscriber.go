package sse

import (
	"context"

	"github.com/osse101/BinhiHeritage_Go/internal/event"
	"github.com/osse101/BinhiHeritage_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe forwards every museum event type to the hub
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.AllTypes))
	for _, t := range event.AllTypes {
		s.bus.Subscribe(t, s.forward)
		types = append(types, string(t))
	}
	logger.Info(LogMsgSubscribed, "types", types)
}

func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	userID := evt.UserID()
	s.hub.Broadcast(string(evt.Type), userID, evt.Payload)
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", userID)
	return nil
}
