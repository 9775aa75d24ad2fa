package usecase

import (
	"context"

	"activity-booking/pkg/asaas"
	"activity-booking/pkg/events"
	"activity-booking/pkg/mailer"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

type PaymentGateway interface {
	CreateCharge(ctx context.Context, req asaas.ChargeRequest) (*asaas.Charge, error)
	GetPixQrCode(ctx context.Context, chargeID string) (*asaas.PixQrCode, error)
}

type Notifier interface {
	SendConfirmation(ctx context.Context, c mailer.Confirmation) error
}

type EventPublisher interface {
	PublishReservationPaid(ctx context.Context, event events.ReservationPaid) error
}
