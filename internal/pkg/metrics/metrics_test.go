package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSetGate(t *testing.T) {
	SetGate(false)
	assert.Equal(t, 0.0, testutil.ToFloat64(GateEnabled))

	SetGate(true)
	assert.Equal(t, 1.0, testutil.ToFloat64(GateEnabled))
}

func TestWebhookRequestsByResult(t *testing.T) {
	before := testutil.ToFloat64(WebhookRequests.WithLabelValues(ResultRejected))
	WebhookRequests.WithLabelValues(ResultRejected).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(WebhookRequests.WithLabelValues(ResultRejected)))
}
