package request

import "github.com/shopspring/decimal"

// CreateBookingRequest keeps the JSON keys used by the booking page client.
type CreateBookingRequest struct {
	Name        string          `json:"nome" validate:"required"`
	Email       string          `json:"email" validate:"required,email"`
	TaxID       string          `json:"cpf" validate:"required"`
	Phone       string          `json:"telefone" validate:"required"`
	Activity    string          `json:"atividade" validate:"required"`
	Date        string          `json:"data" validate:"required,datetime=2006-01-02"`
	TimeSlot    string          `json:"horario" validate:"required"`
	PartySize   int             `json:"participantes" validate:"required,gt=0"`
	BillingType string          `json:"billingType" validate:"required"`
	Amount      decimal.Decimal `json:"valor"`
	Note        string          `json:"observacao,omitempty"`
}
