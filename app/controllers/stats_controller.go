package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/internal/pkg/statistics"
	"github.com/ManuelReschke/PayHook/internal/pkg/webhook"
)

// DailyCounter reads persisted accepted counts per day.
type DailyCounter interface {
	Daily(ctx context.Context) (map[string]int64, error)
}

type StatsController struct {
	svc   *webhook.Service
	daily DailyCounter
}

// NewStatsController builds the controller. daily may be nil.
func NewStatsController(svc *webhook.Service, daily DailyCounter) *StatsController {
	return &StatsController{svc: svc, daily: daily}
}

func (sc *StatsController) HandleStats(c *fiber.Ctx) error {
	summary := statistics.Summarize(sc.svc.Payments(), time.Now())

	if sc.daily != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		daily, err := sc.daily.Daily(ctx)
		if err != nil {
			log.Warnf("[Stats] Daily counters unavailable: %v", err)
		} else {
			summary.Daily = daily
		}
	}

	return c.JSON(summary)
}
