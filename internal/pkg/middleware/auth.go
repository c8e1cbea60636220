package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

// RequireBasicAuth protects operator-only routes such as the fiber monitor.
func RequireBasicAuth(user, password string) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			user: password,
		},
		Realm: "PayHook",
	})
}

// RequireWebSocketUpgrade rejects plain HTTP requests to websocket routes.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if isWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}
