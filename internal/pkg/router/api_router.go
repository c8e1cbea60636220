package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/PayHook/app/controllers"
	"github.com/ManuelReschke/PayHook/internal/pkg/constants"
	"github.com/ManuelReschke/PayHook/internal/pkg/middleware"
)

type ApiRouter struct {
	deps Dependencies
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	wc := controllers.NewWebhookController(h.deps.Service)

	app.Get(constants.HealthRoute, wc.HandleHealth)
	app.Get(constants.WebhookStatusRoute, wc.HandleStatus)
	app.Post(constants.WebhookToggleRoute, middleware.ToggleLimiter(h.deps.Config.ToggleLimit, h.deps.LimiterStorage), wc.HandleToggle)
	app.Post(constants.WebhookRoute, wc.HandleWebhook)
	app.Get(constants.PaymentsRoute, wc.HandlePayments)

	var daily controllers.DailyCounter
	if h.deps.Counter != nil {
		daily = h.deps.Counter
	}
	sc := controllers.NewStatsController(h.deps.Service, daily)
	app.Get(constants.StatsRoute, sc.HandleStats)
}

func NewApiRouter(deps Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}
