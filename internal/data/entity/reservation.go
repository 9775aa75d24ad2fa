package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationStatusPending ReservationStatus = "pending"
	ReservationStatusPaid    ReservationStatus = "paid"
)

type BillingMethod string

const (
	BillingMethodPix        BillingMethod = "PIX"
	BillingMethodCreditCard BillingMethod = "CREDIT_CARD"
)

// ParseBillingMethod accepts only the exact upper-case literals used by the gateway.
func ParseBillingMethod(s string) (BillingMethod, bool) {
	switch BillingMethod(s) {
	case BillingMethodPix, BillingMethodCreditCard:
		return BillingMethod(s), true
	default:
		return "", false
	}
}

// Reservation is a booking for one activity slot. ID doubles as the
// external reference of the gateway charge.
type Reservation struct {
	ID        string            `db:"id"`
	Name      string            `db:"name"`
	Email     string            `db:"email"`
	TaxID     string            `db:"tax_id"`
	Phone     string            `db:"phone"`
	Activity  string            `db:"activity"`
	Date      string            `db:"date"`
	TimeSlot  string            `db:"time_slot"`
	PartySize int               `db:"party_size"`
	Amount    decimal.Decimal   `db:"amount_cents"`
	Note      string            `db:"note"`
	Status    ReservationStatus `db:"status"`
	CreatedAt time.Time         `db:"created_at"`
	PaidAt    *time.Time        `db:"paid_at"`
}

func (r *Reservation) IsPaid() bool {
	return r.Status == ReservationStatusPaid
}
