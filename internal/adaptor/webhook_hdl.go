package adaptor

import (
	"net/http"

	"activity-booking/internal/usecase"
	"activity-booking/pkg/asaas"
	"activity-booking/pkg/utils"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Plain text replies read by the gateway's delivery log.
const (
	MsgWebhookInvalidBody      = "payload inválido"
	MsgWebhookMissingReference = "externalReference ausente"
	MsgWebhookUnknownReference = "reserva não encontrada"
	MsgWebhookFailed           = "Erro ao processar o webhook"
)

type WebhookHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.ReservationService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// Receive handles POST /webhook
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	event, err := asaas.DecodeWebhookEvent(r.Body)
	if err != nil {
		h.log.Warn("Invalid webhook body", zap.Error(err))
		utils.ResponseText(w, http.StatusBadRequest, MsgWebhookInvalidBody)
		return
	}

	result, err := h.service.ConfirmPayment(r.Context(), event)
	if err != nil {
		h.handleConfirmError(w, err, event)
		return
	}

	h.log.Info("Webhook handled",
		zap.String("event", event.Event),
		zap.String("result", result.String()),
	)
	utils.ResponseText(w, http.StatusOK, "")
}

func (h *WebhookHandler) handleConfirmError(w http.ResponseWriter, err error, event *asaas.WebhookEvent) {
	reference := event.ExternalReference()

	switch {
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseText(w, http.StatusBadRequest, MsgWebhookMissingReference)

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn("Webhook for unknown reservation", zap.String("reference", reference))
		utils.ResponseText(w, http.StatusNotFound, MsgWebhookUnknownReference)

	default:
		h.log.Error("Failed to process webhook",
			zap.Error(err),
			zap.String("reference", reference),
		)
		utils.ResponseText(w, http.StatusInternalServerError, MsgWebhookFailed)
	}
}
