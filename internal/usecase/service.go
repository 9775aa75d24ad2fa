package usecase

import (
	"activity-booking/internal/data/repository"
	"activity-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Reservation ReservationService
}

func NewService(repo *repository.Repository, deps Collaborators, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Reservation: NewReservationService(repo.Reservation, deps, ReservationConfig{
			CustomerID:     config.Gateway.CustomerID,
			SplitWalletID:  config.Gateway.SplitWalletID,
			FetchPixQrCode: config.Gateway.FetchPixQrCode,
			StoreTimeout:   config.Timeouts.Store,
			GatewayTimeout: config.Timeouts.Gateway,
			NotifyTimeout:  config.Timeouts.Notify,
		}, log),
	}
}
