package gate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_StartsEnabled(t *testing.T) {
	assert.True(t, New().Enabled())
}

func TestGate_ToggleReturnsNewState(t *testing.T) {
	g := New()

	assert.False(t, g.Toggle())
	assert.False(t, g.Enabled())
	assert.True(t, g.Toggle())
	assert.True(t, g.Enabled())
}

func TestGate_ConcurrentTogglesArePureNegation(t *testing.T) {
	g := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Toggle()
		}()
	}
	wg.Wait()

	assert.True(t, g.Enabled(), "an even number of toggles restores the initial state")
}
