package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/PayHook/internal/pkg/payments"
	"github.com/ManuelReschke/PayHook/internal/pkg/webhook"
)

const (
	msgPaymentReceived = "Pago recibido correctamente"
	errGateClosed      = "Webhook temporalmente deshabilitado para pruebas de DLQ"
	errProcessing      = "Error procesando el pago"
)

type WebhookController struct {
	svc *webhook.Service
}

func NewWebhookController(svc *webhook.Service) *WebhookController {
	return &WebhookController{svc: svc}
}

func (wc *WebhookController) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(payments.TimestampLayout),
	})
}

func (wc *WebhookController) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"enabled": wc.svc.Enabled()})
}

func (wc *WebhookController) HandleToggle(c *fiber.Ctx) error {
	enabled := wc.svc.Toggle()
	return c.JSON(fiber.Map{
		"enabled": enabled,
		"message": toggleMessage(enabled),
	})
}

// HandleWebhook ingests one payment notification. 503 tells the upstream
// queue to retry and eventually dead-letter the message.
func (wc *WebhookController) HandleWebhook(c *fiber.Ctx) error {
	res, err := wc.svc.Accept(c.Body())
	if err != nil {
		if errors.Is(err, webhook.ErrGateClosed) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"error":   errGateClosed,
			})
		}
		log.Errorf("[Webhook] Processing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   errProcessing,
		})
	}

	body := fiber.Map{
		"success":   true,
		"message":   msgPaymentReceived,
		"paymentId": res.Payment.ID,
	}
	if res.Duplicate {
		body["duplicate"] = true
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func (wc *WebhookController) HandlePayments(c *fiber.Ctx) error {
	return c.JSON(wc.svc.Payments())
}

func toggleMessage(enabled bool) string {
	if enabled {
		return "Webhook ACTIVADO. Recibiendo pagos normalmente."
	}
	return "Webhook DESACTIVADO. Los mensajes irán al DLQ."
}
