// Package feed is a broadcast hub for moderation events. Subscribers (the
// admin websocket endpoint) receive every published event; slow subscribers
// are dropped rather than allowed to stall the loop.
package feed

import (
	"log/slog"

	"modbot/backend/internal/models"
)

// Subscriber is one live consumer of the event stream.
type Subscriber struct {
	Send chan models.ModEvent
}

// Hub fans published moderation events out to all subscribers. All state is
// owned by the Run loop; interaction happens over channels.
type Hub struct {
	RegisterCh   chan *Subscriber
	UnregisterCh chan *Subscriber

	publishCh   chan models.ModEvent
	subscribers map[*Subscriber]bool
	logger      *slog.Logger
}

// NewHub creates an event hub. Call Run in its own goroutine.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		RegisterCh:   make(chan *Subscriber),
		UnregisterCh: make(chan *Subscriber),
		publishCh:    make(chan models.ModEvent, 64),
		subscribers:  make(map[*Subscriber]bool),
		logger:       logger,
	}
}

// Run is the hub's dispatch loop.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.RegisterCh:
			h.subscribers[sub] = true
		case sub := <-h.UnregisterCh:
			if h.subscribers[sub] {
				delete(h.subscribers, sub)
				close(sub.Send)
			}
		case ev := <-h.publishCh:
			for sub := range h.subscribers {
				select {
				case sub.Send <- ev:
				default:
					// Slow subscriber; drop it instead of blocking the loop.
					delete(h.subscribers, sub)
					close(sub.Send)
				}
			}
		}
	}
}

// Publish enqueues an event for broadcast. Publishing never blocks the
// moderation path; if the hub's buffer is full the event is discarded.
func (h *Hub) Publish(ev models.ModEvent) {
	select {
	case h.publishCh <- ev:
	default:
		h.logger.Warn("feed buffer full, event dropped", "type", ev.Type)
	}
}

// Subscribe registers a new consumer and returns it.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{Send: make(chan models.ModEvent, 16)}
	h.RegisterCh <- sub
	return sub
}

// Unsubscribe removes a consumer; its Send channel is closed by the loop.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.UnregisterCh <- sub
}
