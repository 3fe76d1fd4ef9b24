package controllers

import (
	"nextglide-backend/src/services/webhooks"

	"github.com/gofiber/fiber/v2"
)

type WebhookController struct {
	events *webhooks.MailEvents
}

func NewWebhookController(events *webhooks.MailEvents) *WebhookController {
	return &WebhookController{events: events}
}

// MailEvents godoc
// @Summary      Receive mail delivery events
// @Description  Events are logged only. Every request is acknowledged.
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /webhooks/mailjet [post]
func (h *WebhookController) MailEvents(c *fiber.Ctx) error {
	h.events.Handle(c.Body())
	return c.Status(fiber.StatusOK).SendString("OK")
}
