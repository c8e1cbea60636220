package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLimiter_MemoryStorage(t *testing.T) {
	app := fiber.New()
	app.Post("/toggle", ToggleLimiter(2, nil), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/toggle", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/toggle", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestNewLimiterStorage_WithoutCache(t *testing.T) {
	assert.Nil(t, NewLimiterStorage())
}

func TestRequireBasicAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/monitor", RequireBasicAuth("admin", "secret"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	tests := []struct {
		name   string
		creds  string
		status int
	}{
		{name: "missing", creds: "", status: fiber.StatusUnauthorized},
		{name: "wrong password", creds: "admin:nope", status: fiber.StatusUnauthorized},
		{name: "valid", creds: "admin:secret", status: fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/monitor", nil)
			if tt.creds != "" {
				req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(tt.creds)))
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireWebSocketUpgrade(t *testing.T) {
	app := fiber.New()
	app.Get("/ws", RequireWebSocketUpgrade, func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusSwitchingProtocols)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestRequireWebSocketUpgrade_PassesUpgradeRequests(t *testing.T) {
	app := fiber.New()
	app.Get("/ws", RequireWebSocketUpgrade, func(c *fiber.Ctx) error {
		assert.Nil(t, c.Locals("allowed"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
