package router

import (
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/internal/pkg/constants"
)

// registerClientRoutes serves the bundled dashboard. Unknown GET paths fall
// back to index.html so client-side routing works.
func (h HttpRouter) registerClientRoutes(app *fiber.App) {
	cfg := h.deps.Config
	if !cfg.IsProduction() || !cfg.HasClientBuild() {
		return
	}

	log.Infof("[Router] Serving client from %s", cfg.ClientBuildPath)
	app.Static(constants.PublicRoute, cfg.ClientBuildPath, fiber.Static{
		CacheDuration: 15 * time.Second,
		Compress:      true,
	})

	index := filepath.Join(cfg.ClientBuildPath, "index.html")
	app.Get("*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}
