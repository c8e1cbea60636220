// Package broadcast fans payment and gate events out to connected dashboard
// subscribers.
package broadcast

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/app/models"
	"github.com/ManuelReschke/PayHook/internal/pkg/metrics"
)

// ErrSubscriberSlow is returned by Deliver when a subscriber cannot take
// another event without blocking.
var ErrSubscriberSlow = errors.New("broadcast: subscriber buffer full")

// Subscriber receives pushed events. Deliver must not block.
type Subscriber interface {
	ID() string
	Deliver(ev Event) error
}

// closer is implemented by subscribers that own a connection.
type closer interface {
	Close() error
}

// Hub keeps the set of connected subscribers. All deliveries happen while
// holding the hub lock, so a subscriber sees events in publish order and
// never receives anything after Disconnect returns.
type Hub struct {
	mu   sync.Mutex
	subs map[string]Subscriber
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]Subscriber)}
}

// Connect sends history to sub and registers it. If the history cannot be
// delivered the subscriber is not registered.
func (h *Hub) Connect(sub Subscriber, history []models.Payment) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := sub.Deliver(HistoryEvent(history)); err != nil {
		return err
	}
	h.subs[sub.ID()] = sub
	metrics.Subscribers.Set(float64(len(h.subs)))
	log.Infof("[Hub] Subscriber connected: %s (history=%d)", sub.ID(), len(history))
	return nil
}

// Disconnect removes sub. Removing an unknown subscriber is a no-op.
func (h *Hub) Disconnect(sub Subscriber) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub.ID()]; !ok {
		return false
	}
	delete(h.subs, sub.ID())
	metrics.Subscribers.Set(float64(len(h.subs)))
	log.Infof("[Hub] Subscriber disconnected: %s", sub.ID())
	return true
}

// PublishPayment sends p to every connected subscriber and returns how many
// received it.
func (h *Hub) PublishPayment(p models.Payment) int {
	return h.publish(NewPaymentEvent(p))
}

// PublishGateState sends the gate state to every connected subscriber.
func (h *Hub) PublishGateState(enabled bool) int {
	return h.publish(GateStatusEvent(enabled))
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) publish(ev Event) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for id, sub := range h.subs {
		if err := sub.Deliver(ev); err != nil {
			log.Warnf("[Hub] Dropping subscriber %s: %v", id, err)
			delete(h.subs, id)
			if c, ok := sub.(closer); ok {
				_ = c.Close()
			}
			continue
		}
		delivered++
	}
	metrics.Subscribers.Set(float64(len(h.subs)))
	return delivered
}
