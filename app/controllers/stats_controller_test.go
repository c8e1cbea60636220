package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/PayHook/internal/pkg/statistics"
)

type stubDaily struct {
	data map[string]int64
	err  error
}

func (s stubDaily) Daily(context.Context) (map[string]int64, error) {
	return s.data, s.err
}

func TestHandleStats(t *testing.T) {
	tests := []struct {
		name      string
		daily     DailyCounter
		wantDaily map[string]int64
	}{
		{name: "memory only", daily: nil},
		{name: "with counters", daily: stubDaily{data: map[string]int64{"2026-01-01": 7}}, wantDaily: map[string]int64{"2026-01-01": 7}},
		{name: "counters failing", daily: stubDaily{err: errors.New("down")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, svc := newTestApp(t)
			_, err := svc.Accept([]byte(`{"payment_id":"a","amount":100,"currency":"USD","status":"approved"}`))
			require.NoError(t, err)
			_, err = svc.Accept([]byte(`{"payment_id":"b","amount":50}`))
			require.NoError(t, err)

			app := fiber.New()
			app.Get("/payments/stats", NewStatsController(svc, tt.daily).HandleStats)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/payments/stats", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			var s statistics.Summary
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&s))
			assert.Equal(t, 2, s.Count)
			assert.Equal(t, 150.0, s.TotalAmount)
			assert.Equal(t, 1, s.ByCurrency["ARS"].Count)
			assert.Equal(t, 2, s.Today)
			assert.Equal(t, tt.wantDaily, s.Daily)
		})
	}
}
