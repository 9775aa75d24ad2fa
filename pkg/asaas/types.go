package asaas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

const (
	BillingTypePix        = "PIX"
	BillingTypeCreditCard = "CREDIT_CARD"
)

// EventPaymentConfirmed is the webhook event sent once a charge is paid.
const EventPaymentConfirmed = "PAYMENT_CONFIRMED"

// Split routes part of a charge to another Asaas wallet.
type Split struct {
	WalletID   string
	FixedValue decimal.Decimal
}

type ChargeRequest struct {
	Customer          string
	BillingType       string
	Value             decimal.Decimal
	DueDate           string
	Description       string
	ExternalReference string
	Split             []Split
}

type Charge struct {
	ID                string          `json:"id"`
	Customer          string          `json:"customer"`
	BillingType       string          `json:"billingType"`
	Status            string          `json:"status"`
	Value             decimal.Decimal `json:"value"`
	DueDate           string          `json:"dueDate"`
	Description       string          `json:"description"`
	ExternalReference string          `json:"externalReference"`
	InvoiceURL        string          `json:"invoiceUrl"`
}

type PixQrCode struct {
	EncodedImage   string `json:"encodedImage"`
	Payload        string `json:"payload"`
	ExpirationDate string `json:"expirationDate"`
}

// WebhookEvent is the body Asaas posts to the webhook endpoint.
type WebhookEvent struct {
	ID      string          `json:"id,omitempty"`
	Event   string          `json:"event"`
	Payment *WebhookPayment `json:"payment,omitempty"`
}

type WebhookPayment struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	BillingType       string `json:"billingType"`
	Status            string `json:"status"`
	ExternalReference string `json:"externalReference"`
}

type webhookEnvelope struct {
	ID      json.RawMessage `json:"id"`
	Event   string          `json:"event"`
	Payment json.RawMessage `json:"payment"`
}

// DecodeWebhookEvent reads a webhook body. The payment object is only
// decoded for PAYMENT_CONFIRMED; other events keep a nil Payment whatever
// shape it had.
func DecodeWebhookEvent(r io.Reader) (*WebhookEvent, error) {
	var envelope webhookEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}

	event := &WebhookEvent{Event: envelope.Event}
	_ = json.Unmarshal(envelope.ID, &event.ID)

	if !event.IsPaymentConfirmed() || isJSONNull(envelope.Payment) {
		return event, nil
	}

	var payment WebhookPayment
	if err := json.Unmarshal(envelope.Payment, &payment); err != nil {
		return nil, fmt.Errorf("decode webhook payment: %w", err)
	}
	event.Payment = &payment

	return event, nil
}

func isJSONNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func (e *WebhookEvent) IsPaymentConfirmed() bool {
	return e != nil && e.Event == EventPaymentConfirmed
}

func (e *WebhookEvent) ExternalReference() string {
	if e == nil || e.Payment == nil {
		return ""
	}
	return e.Payment.ExternalReference
}

// APIError is a non-2xx answer from the gateway. Payload is the response
// body as returned, or a JSON string when the body was not JSON.
type APIError struct {
	StatusCode int
	Payload    json.RawMessage
}

func (e *APIError) Error() string {
	payload := string(e.Payload)
	if len(payload) > 256 {
		payload = payload[:256] + "..."
	}
	return fmt.Sprintf("asaas: status %d: %s", e.StatusCode, payload)
}

type chargePayload struct {
	Customer          string         `json:"customer"`
	BillingType       string         `json:"billingType"`
	Value             json.Number    `json:"value"`
	DueDate           string         `json:"dueDate"`
	Description       string         `json:"description,omitempty"`
	ExternalReference string         `json:"externalReference"`
	Split             []splitPayload `json:"split,omitempty"`
}

type splitPayload struct {
	WalletID   string      `json:"walletId"`
	FixedValue json.Number `json:"fixedValue"`
}

func newChargePayload(req ChargeRequest) chargePayload {
	payload := chargePayload{
		Customer:          req.Customer,
		BillingType:       req.BillingType,
		Value:             json.Number(req.Value.StringFixed(2)),
		DueDate:           req.DueDate,
		Description:       req.Description,
		ExternalReference: req.ExternalReference,
	}
	for _, s := range req.Split {
		payload.Split = append(payload.Split, splitPayload{
			WalletID:   s.WalletID,
			FixedValue: json.Number(s.FixedValue.StringFixed(2)),
		})
	}
	return payload
}
