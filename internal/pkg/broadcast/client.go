package broadcast

import (
	"sync"

	"github.com/gofiber/fiber/v2/log"
)

// DefaultClientBuffer is the number of events a client may lag behind before
// the hub drops it.
const DefaultClientBuffer = 64

// Conn is the part of a websocket connection a Client writes to.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Client is a Subscriber backed by a connection. Events are queued by
// Deliver and written by WritePump.
type Client struct {
	id        string
	conn      Conn
	send      chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(id string, conn Conn, buffer int) *Client {
	if buffer <= 0 {
		buffer = DefaultClientBuffer
	}
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan Event, buffer),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string { return c.id }

// Deliver queues ev without blocking.
func (c *Client) Deliver(ev Event) error {
	select {
	case c.send <- ev:
		return nil
	default:
		return ErrSubscriberSlow
	}
}

// WritePump writes queued events until Close is called or a write fails.
func (c *Client) WritePump() {
	defer close(c.done)
	for ev := range c.send {
		if err := c.conn.WriteJSON(ev); err != nil {
			log.Warnf("[Hub] Write to %s failed: %v", c.id, err)
			_ = c.conn.Close()
			return
		}
	}
}

// Done is closed when WritePump has returned.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close stops the write pump and closes the connection. It must only be
// called once the client is no longer registered with a hub.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.send)
		err = c.conn.Close()
	})
	return err
}
