package controllers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/ManuelReschke/PayHook/internal/pkg/broadcast"
	"github.com/ManuelReschke/PayHook/internal/pkg/webhook"
)

// RealtimeController serves the dashboard websocket. Each connection gets
// the payment history first, then new-payment and webhook-status events.
type RealtimeController struct {
	svc     *webhook.Service
	buffer  int
	origins []string
}

// NewRealtimeController restricts upgrades to origins; an empty list allows
// any origin.
func NewRealtimeController(svc *webhook.Service, buffer int, origins ...string) *RealtimeController {
	return &RealtimeController{svc: svc, buffer: buffer, origins: origins}
}

func (rc *RealtimeController) HandleSocket() fiber.Handler {
	cfg := websocket.Config{}
	if len(rc.origins) > 0 {
		cfg.Origins = rc.origins
	}
	return websocket.New(rc.serve, cfg)
}

func (rc *RealtimeController) serve(conn *websocket.Conn) {
	client := broadcast.NewClient(uuid.NewString(), conn, rc.buffer)
	go client.WritePump()

	if err := rc.svc.Connect(client); err == nil {
		// Inbound frames are ignored; reading only detects the disconnect.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		rc.svc.Disconnect(client)
	}

	_ = client.Close()
	<-client.Done()
}
