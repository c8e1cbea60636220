// Package relay forwards accepted payments and gate changes to external
// message brokers, in acceptance order, without blocking webhook requests.
package relay

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/internal/pkg/metrics"
)

const (
	DefaultQueueSize = 256
	sendTimeout      = 5 * time.Second
)

// Message is a single relayed event. Key is the payment id for payment
// events and empty for gate events.
type Message struct {
	Event string
	Key   string
	Body  []byte
}

// Sink delivers messages to one external system.
type Sink interface {
	Name() string
	Send(ctx context.Context, msg Message) error
	Close() error
}

// Dispatcher queues messages and hands them to every sink from a single
// worker, so sinks observe messages in the order they were published.
type Dispatcher struct {
	sinks   []Sink
	queue   chan Message
	stopCh  chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool
}

func NewDispatcher(queueSize int, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		sinks:  sinks,
		queue:  make(chan Message, queueSize),
		stopCh: make(chan struct{}),
	}
}

// Enabled reports whether any sink is configured.
func (d *Dispatcher) Enabled() bool {
	return d != nil && len(d.sinks) > 0
}

// Start launches the worker. Calling Start twice is a no-op.
func (d *Dispatcher) Start() {
	if !d.Enabled() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return
	}
	d.running = true

	names := make([]string, len(d.sinks))
	for i, s := range d.sinks {
		names[i] = s.Name()
	}
	log.Infof("[Relay] Starting with sinks %v", names)

	d.wg.Add(1)
	go d.worker()
}

// Stop drains queued messages, stops the worker and closes all sinks.
func (d *Dispatcher) Stop() {
	if !d.Enabled() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.running {
		return
	}
	close(d.stopCh)
	d.wg.Wait()
	d.running = false

	for _, s := range d.sinks {
		if err := s.Close(); err != nil {
			log.Errorf("[Relay] Closing sink %s: %v", s.Name(), err)
		}
	}
	log.Info("[Relay] Stopped")
}

// Publish encodes data and queues it. It returns false when no sink is
// configured, encoding fails or the queue is full.
func (d *Dispatcher) Publish(event, key string, data any) bool {
	if !d.Enabled() {
		return false
	}
	body, err := json.Marshal(data)
	if err != nil {
		log.Errorf("[Relay] Encoding %s event: %v", event, err)
		return false
	}

	select {
	case d.queue <- Message{Event: event, Key: key, Body: body}:
		return true
	default:
		metrics.RelayDropped.Inc()
		log.Warnf("[Relay] Queue full, dropping %s event (key=%s)", event, key)
		return false
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		select {
		case msg := <-d.queue:
			d.deliver(msg)
		case <-d.stopCh:
			for {
				select {
				case msg := <-d.queue:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	for _, s := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := s.Send(ctx, msg)
		cancel()
		if err != nil {
			metrics.RelayEvents.WithLabelValues(s.Name(), "error").Inc()
			log.Errorf("[Relay] %s: sending %s event (key=%s): %v", s.Name(), msg.Event, msg.Key, err)
			continue
		}
		metrics.RelayEvents.WithLabelValues(s.Name(), "ok").Inc()
	}
}
