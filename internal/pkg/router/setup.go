package router

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/ManuelReschke/PayHook/internal/pkg/config"
	"github.com/ManuelReschke/PayHook/internal/pkg/metrics/counter"
	"github.com/ManuelReschke/PayHook/internal/pkg/webhook"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// Dependencies are built once at startup and shared by all routers.
type Dependencies struct {
	Config  *config.Config
	Service *webhook.Service
	// LimiterStorage backs the toggle limiter; nil keeps it in memory.
	LimiterStorage fiber.Storage
	// Counter provides persisted daily counts; nil without Redis.
	Counter *counter.Sink
}

func InstallRouter(app *fiber.App, deps Dependencies) {
	app.Use(cors.New(corsConfig(deps.Config)))

	// Install ApiRouter first. HttpRouter ends with the client catch-all
	// which would otherwise shadow the API routes.
	setup(app, NewApiRouter(deps), NewHttpRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}

// corsConfig allows any origin when the bundled client is served and only
// CLIENT_URL during development.
func corsConfig(cfg *config.Config) cors.Config {
	origins := strings.TrimRight(cfg.ClientURL, "/")
	if cfg.IsProduction() {
		origins = "*"
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost}, ","),
	}
}
