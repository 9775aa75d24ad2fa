package adaptor

import (
	"encoding/json"
	"net/http"

	"activity-booking/internal/dto/request"
	"activity-booking/internal/usecase"
	"activity-booking/pkg/asaas"
	"activity-booking/pkg/utils"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Messages shown to the booking page.
const (
	MsgMissingFields        = "Dados incompletos. Todos os campos são obrigatórios."
	MsgInvalidFields        = "Dados inválidos. Verifique os campos informados."
	MsgInvalidBillingMethod = "Forma de pagamento inválida. Use 'PIX' ou 'CREDIT_CARD'."
	MsgCapacityExceeded     = "Não há vagas suficientes para este horário."
	MsgInvalidBody          = "Corpo da requisição inválido."
	MsgChargeFailed         = "Erro interno ao processar a cobrança."
	MsgWindowBusy           = "Muitas reservas simultâneas para este horário. Tente novamente em instantes."
	MsgReservationNotFound  = "Reserva não encontrada."
	MsgInternalError        = "Erro interno."
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateCharge handles POST /api/cobrancas
func (h *ReservationHandler) CreateCharge(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid booking request body", zap.Error(err))
		utils.ResponseBadRequest(w, MsgInvalidBody)
		return
	}

	result, err := h.service.RequestBooking(r.Context(), &req)
	if err != nil {
		h.handleBookingError(w, err)
		return
	}

	utils.ResponseSuccess(w, result)
}

// GetReservation handles GET /api/reservas/{id}
func (h *ReservationHandler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.GetReservation(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			utils.ResponseNotFound(w, MsgReservationNotFound)
			return
		}
		h.log.Error("Failed to get reservation", zap.Error(err), zap.String("reservation_id", id))
		utils.ResponseInternalError(w, MsgInternalError)
		return
	}

	utils.ResponseSuccess(w, result)
}

func (h *ReservationHandler) handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrMissingFields):
		utils.ResponseBadRequest(w, MsgMissingFields)

	case errors.Is(err, usecase.ErrInvalidBillingMethod):
		utils.ResponseBadRequest(w, MsgInvalidBillingMethod)

	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, MsgInvalidFields)

	case errors.Is(err, usecase.ErrCapacity):
		utils.ResponseBadRequest(w, MsgCapacityExceeded)

	case errors.Is(err, usecase.ErrWindowBusy):
		h.log.Warn("Capacity window busy", zap.Error(err))
		utils.ResponseServiceUnavailable(w, MsgWindowBusy)

	case errors.Is(err, usecase.ErrGateway):
		var apiErr *asaas.APIError
		if errors.As(err, &apiErr) {
			h.log.Warn("Gateway rejected charge", zap.Error(err), zap.Int("gateway_status", apiErr.StatusCode))
			utils.ResponseUpstreamError(w, apiErr.Payload)
			return
		}
		h.log.Error("Gateway unavailable", zap.Error(err))
		utils.ResponseInternalError(w, MsgChargeFailed)

	default:
		h.log.Error("Failed to process charge", zap.Error(err))
		utils.ResponseInternalError(w, MsgChargeFailed)
	}
}
