package wire

import (
	"activity-booking/internal/adaptor"
	"activity-booking/pkg/middleware"
	"activity-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWebhook(
	r chi.Router,
	webhookHandler *adaptor.WebhookHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	if config.Gateway.WebhookTokenHash == "" {
		log.Warn("ASAAS_WEBHOOK_TOKEN_HASH not set, webhook accepts unauthenticated calls")
	}

	// POST /webhook - gateway payment events
	r.With(middleware.WebhookToken(config.Gateway.WebhookTokenHash, log)).
		Post("/webhook", webhookHandler.Receive)
}
