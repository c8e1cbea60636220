// Package gate holds the admission switch used to simulate an outage of the
// webhook so the upstream queue routes messages to its dead-letter queue.
package gate

import "sync/atomic"

// Gate is a process-wide on/off switch. The zero value is closed; use New.
type Gate struct {
	enabled atomic.Bool
}

// New returns an open gate.
func New() *Gate {
	g := &Gate{}
	g.enabled.Store(true)
	return g
}

// Enabled reports whether inbound payloads are accepted.
func (g *Gate) Enabled() bool {
	return g.enabled.Load()
}

// Toggle negates the gate and returns the new state.
func (g *Gate) Toggle() bool {
	for {
		old := g.enabled.Load()
		if g.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
