package response

import (
	"time"

	"activity-booking/internal/data/entity"
)

// BookingResult is returned by a successful booking request.
type BookingResult struct {
	Status        string         `json:"status"`
	ReservationID string         `json:"reservaId"`
	Charge        ChargeResponse `json:"cobranca"`
}

type ChargeResponse struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	InvoiceURL     string `json:"invoiceUrl,omitempty"`
	PixKey         string `json:"pixKey,omitempty"`
	QrCodeImage    string `json:"qrCodeImage,omitempty"`
	ExpirationDate string `json:"expirationDate,omitempty"`
}

type ReservationResult struct {
	Status      string              `json:"status"`
	Reservation ReservationResponse `json:"reserva"`
}

type ReservationResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"nome"`
	Activity  string                   `json:"atividade"`
	Date      string                   `json:"data"`
	TimeSlot  string                   `json:"horario"`
	PartySize int                      `json:"participantes"`
	Amount    string                   `json:"valor"`
	Note      string                   `json:"observacao,omitempty"`
	Status    entity.ReservationStatus `json:"status"`
	CreatedAt time.Time                `json:"criadoEm"`
	PaidAt    *time.Time               `json:"dataPagamento,omitempty"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:        r.ID,
		Name:      r.Name,
		Activity:  r.Activity,
		Date:      r.Date,
		TimeSlot:  r.TimeSlot,
		PartySize: r.PartySize,
		Amount:    r.Amount.StringFixed(2),
		Note:      r.Note,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		PaidAt:    r.PaidAt,
	}
}
