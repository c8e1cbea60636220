// Package webhook implements payment admission: gate check, normalization,
// history insert and fan-out of the resulting events.
package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/app/models"
	"github.com/ManuelReschke/PayHook/internal/pkg/broadcast"
	"github.com/ManuelReschke/PayHook/internal/pkg/gate"
	"github.com/ManuelReschke/PayHook/internal/pkg/history"
	"github.com/ManuelReschke/PayHook/internal/pkg/metrics"
	"github.com/ManuelReschke/PayHook/internal/pkg/payments"
	"github.com/ManuelReschke/PayHook/internal/pkg/relay"
)

var (
	// ErrGateClosed means the webhook is switched off and the caller should
	// retry later.
	ErrGateClosed = errors.New("webhook: gate closed")
	// ErrInvalidPayload means the request body is not a JSON object.
	ErrInvalidPayload = errors.New("webhook: invalid payload")
)

// Result describes an accepted delivery.
type Result struct {
	Payment   models.Payment
	Duplicate bool
}

// Service serializes every state change behind one lock. Acceptance order,
// store order and broadcast order are therefore identical, and a subscriber
// that connects concurrently with an accept sees the payment exactly once.
type Service struct {
	mu         sync.Mutex
	gate       *gate.Gate
	store      *history.Store
	hub        *broadcast.Hub
	normalizer *payments.Normalizer
	relay      *relay.Dispatcher
}

// NewService wires the admission flow. relay may be nil.
func NewService(g *gate.Gate, store *history.Store, hub *broadcast.Hub, n *payments.Normalizer, r *relay.Dispatcher) *Service {
	if n == nil {
		n = payments.NewNormalizer()
	}
	metrics.SetGate(g.Enabled())
	metrics.HistorySize.Set(float64(store.Size()))
	return &Service{gate: g, store: store, hub: hub, normalizer: n, relay: r}
}

// change is what a mutation produced; dispatch turns it into events.
type change struct {
	payment *models.Payment
	gate    *bool
}

// Accept runs one delivery through the gate. A closed gate wins over a
// malformed body. On any error the store and gate are left untouched.
func (s *Service) Accept(body []byte) (res Result, err error) {
	raw, decodeErr := DecodePayload(body)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Enabled() {
		metrics.WebhookRequests.WithLabelValues(metrics.ResultRejected).Inc()
		log.Warn("[Webhook] Gate closed, rejecting delivery")
		return Result{}, ErrGateClosed
	}
	if decodeErr != nil {
		metrics.WebhookRequests.WithLabelValues(metrics.ResultFailed).Inc()
		return Result{}, decodeErr
	}

	p, err := s.normalize(raw)
	if err != nil {
		metrics.WebhookRequests.WithLabelValues(metrics.ResultFailed).Inc()
		return Result{}, err
	}

	if s.store.Contains(p.ID) {
		metrics.WebhookRequests.WithLabelValues(metrics.ResultDuplicate).Inc()
		log.Infof("[Webhook] Duplicate delivery for payment %s ignored", p.ID)
		return Result{Payment: p, Duplicate: true}, nil
	}

	s.store.Insert(p)
	metrics.HistorySize.Set(float64(s.store.Size()))
	metrics.WebhookRequests.WithLabelValues(metrics.ResultAccepted).Inc()
	log.Infof("[Webhook] Payment received: id=%s amount=%.2f currency=%s payer=%s", p.ID, p.Amount, p.Currency, p.Payer)

	s.dispatch(change{payment: &p})
	return Result{Payment: p}, nil
}

// normalize turns a panic in the normalizer into an error.
func (s *Service) normalize(raw map[string]any) (p models.Payment, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("normalize payload: %v", r)
		}
	}()
	return s.normalizer.Normalize(raw), nil
}

// Toggle flips the gate and returns the new state.
func (s *Service) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	enabled := s.gate.Toggle()
	metrics.GateToggles.Inc()
	metrics.SetGate(enabled)
	if enabled {
		log.Info("[Webhook] Gate ENABLED, receiving payments")
	} else {
		log.Warn("[Webhook] Gate DISABLED, deliveries will be rejected")
	}

	s.dispatch(change{gate: &enabled})
	return enabled
}

// Enabled reports the current gate state.
func (s *Service) Enabled() bool {
	return s.gate.Enabled()
}

// Payments returns the stored history, newest first.
func (s *Service) Payments() []models.Payment {
	return s.store.Snapshot()
}

// Connect registers sub and replays the current history to it.
func (s *Service) Connect(sub broadcast.Subscriber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hub.Connect(sub, s.store.Snapshot())
}

// Disconnect removes sub from the broadcast set.
func (s *Service) Disconnect(sub broadcast.Subscriber) {
	s.hub.Disconnect(sub)
}

// dispatch must be called with s.mu held.
func (s *Service) dispatch(c change) {
	if c.payment != nil {
		s.hub.PublishPayment(*c.payment)
		s.relay.Publish(broadcast.EventNewPayment, c.payment.ID, c.payment)
	}
	if c.gate != nil {
		s.hub.PublishGateState(*c.gate)
		s.relay.Publish(broadcast.EventGateStatus, "", models.GateStatus{Enabled: *c.gate})
	}
}

// DecodePayload parses body as a JSON object. An empty body is an empty
// object. Numbers are kept as json.Number so the raw payload is preserved.
func DecodePayload(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: body is null", ErrInvalidPayload)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidPayload)
	}
	return raw, nil
}
