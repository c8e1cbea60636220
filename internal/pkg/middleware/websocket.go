package middleware

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func isWebSocketUpgrade(c *fiber.Ctx) bool {
	return websocket.IsWebSocketUpgrade(c)
}
