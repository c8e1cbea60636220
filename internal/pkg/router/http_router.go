package router

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuelReschke/PayHook/app/controllers"
	"github.com/ManuelReschke/PayHook/internal/pkg/constants"
	"github.com/ManuelReschke/PayHook/internal/pkg/middleware"
)

type HttpRouter struct {
	deps Dependencies
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	cfg := h.deps.Config

	// realtime dashboard channel
	var origins []string
	if !cfg.IsProduction() {
		origins = []string{cfg.ClientURL}
	}
	rc := controllers.NewRealtimeController(h.deps.Service, cfg.ClientBuffer, origins...)
	app.Get(constants.SocketRoute, middleware.RequireWebSocketUpgrade, rc.HandleSocket())

	// prometheus metrics
	app.Get(constants.MetricsRoute, adaptor.HTTPHandler(promhttp.Handler()))

	// fiber monitor, only with credentials configured
	if cfg.MonitorPassword != "" {
		app.Get(constants.MonitorRoute, middleware.RequireBasicAuth(cfg.MonitorUser, cfg.MonitorPassword), monitor.New(monitor.Config{Title: "PayHook Monitor"}))
	}

	// SWAGGER / OPENAPI
	if docsFile := findProjectFile(constants.DocsFilePath); docsFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: constants.DocsRoute,
			FilePath: docsFile,
			Path:     "v1",
		}))
	}

	h.registerClientRoutes(app)
}

func NewHttpRouter(deps Dependencies) *HttpRouter {
	return &HttpRouter{deps: deps}
}

// findProjectFile resolves rel against the possible working directories.
func findProjectFile(rel string) string {
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/payhook to project root
		"../../../", // From internal/pkg/<pkg> in tests
	}
	for _, base := range basePaths {
		if _, err := os.Stat(base + rel); err == nil {
			return base + rel
		}
	}
	log.Warnf("[Router] %s not found, skipping", rel)
	return ""
}
