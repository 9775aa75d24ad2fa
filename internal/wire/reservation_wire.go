package wire

import (
	"activity-booking/internal/adaptor"
	"activity-booking/pkg/middleware"
	"activity-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	limiter := middleware.NewRateLimiter(config.RateLimit.RequestsPerMinute, config.RateLimit.Burst, log)

	r.Route("/api", func(r chi.Router) {
		// POST /api/cobrancas - reserve a slot and open the gateway charge
		r.With(limiter.Limit).Post("/cobrancas", reservationHandler.CreateCharge)

		// GET /api/reservas/{id} - reservation status, polled after payment
		r.Get("/reservas/{id}", reservationHandler.GetReservation)
	})
}
