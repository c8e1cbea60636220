// Package counter keeps per-day accepted payment counts in Redis so they
// survive restarts, unlike the in-memory history.
package counter

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/PayHook/internal/pkg/broadcast"
	"github.com/ManuelReschke/PayHook/internal/pkg/relay"
)

const dailyAcceptedKey = "payhook:counters:accepted:daily"

type hashClient interface {
	HIncrBy(ctx context.Context, key, field string, incr int64) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

// Sink is a relay.Sink counting new-payment events per UTC day.
type Sink struct {
	client hashClient
	now    func() time.Time
}

func NewSink(client hashClient) *Sink {
	return &Sink{client: client, now: time.Now}
}

func (s *Sink) Name() string { return "counter" }

// Send increments today's counter for new-payment events and ignores the rest.
func (s *Sink) Send(ctx context.Context, msg relay.Message) error {
	if msg.Event != broadcast.EventNewPayment {
		return nil
	}
	day := s.now().UTC().Format(time.DateOnly)
	return s.client.HIncrBy(ctx, dailyAcceptedKey, day, 1).Err()
}

func (s *Sink) Close() error { return nil }

// Daily returns the accepted count per day (YYYY-MM-DD).
func (s *Sink) Daily(ctx context.Context) (map[string]int64, error) {
	data, err := s.client.HGetAll(ctx, dailyAcceptedKey).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(data))
	for day, raw := range data {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		out[day] = n
	}
	return out, nil
}
