package relay

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

const DefaultNatsSubject = "payhook"

type natsPublisher interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NatsSink publishes each message on the subject "<subject>.<event>".
type NatsSink struct {
	conn    natsPublisher
	subject string
}

// NewNatsSink connects to url. The connection reconnects indefinitely.
func NewNatsSink(url, subject string) (*NatsSink, error) {
	nc, err := nats.Connect(url, nats.Name("payhook"), nats.MaxReconnects(-1))
	if err != nil {
		return nil, fmt.Errorf("connect to nats %s: %w", url, err)
	}
	return newNatsSink(nc, subject), nil
}

func newNatsSink(conn natsPublisher, subject string) *NatsSink {
	if subject == "" {
		subject = DefaultNatsSubject
	}
	return &NatsSink{conn: conn, subject: subject}
}

func (s *NatsSink) Name() string { return "nats" }

func (s *NatsSink) Send(_ context.Context, msg Message) error {
	return s.conn.Publish(s.subject+"."+msg.Event, msg.Body)
}

func (s *NatsSink) Close() error {
	return s.conn.Drain()
}
