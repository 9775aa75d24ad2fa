package usecase_test

import (
	"testing"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/dto/request"
	"activity-booking/internal/usecase"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBookingRequest() *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		Name:        "Ana Souza",
		Email:       "ana@example.com",
		TaxID:       "123.456.789-09",
		Phone:       "+55 48 99999-0000",
		Activity:    "Trilha da Lagoinha",
		Date:        "2026-03-20",
		TimeSlot:    "09:00",
		PartySize:   4,
		BillingType: "PIX",
		Amount:      decimal.RequireFromString("150.00"),
	}
}

func TestParseBooking(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validBookingRequest()
		req.TimeSlot = " 09:00  "
		req.Amount = decimal.RequireFromString("150.005")
		req.Note = "vegetariano"

		cmd, err := usecase.ParseBooking(req)
		require.NoError(t, err)

		assert.Equal(t, "09:00", cmd.TimeSlot)
		assert.Equal(t, entity.BillingMethodPix, cmd.Method)
		assert.Equal(t, "150.01", cmd.Amount.StringFixed(2))
		assert.Equal(t, 4, cmd.PartySize)
		assert.Equal(t, "vegetariano", cmd.Note)
	})

	t.Run("text fields are trimmed", func(t *testing.T) {
		req := validBookingRequest()
		req.Name = "  Ana Souza "
		req.Email = " ana@example.com"
		req.Activity = "Trilha da Lagoinha\n"

		cmd, err := usecase.ParseBooking(req)
		require.NoError(t, err)

		assert.Equal(t, "Ana Souza", cmd.Name)
		assert.Equal(t, "ana@example.com", cmd.Email)
		assert.Equal(t, "Trilha da Lagoinha", cmd.Activity)
	})

	t.Run("half cent rounds up to a payable amount", func(t *testing.T) {
		req := validBookingRequest()
		req.Amount = decimal.RequireFromString("0.005")

		cmd, err := usecase.ParseBooking(req)
		require.NoError(t, err)
		assert.Equal(t, "0.01", cmd.Amount.StringFixed(2))
		assert.True(t, cmd.Amount.IsPositive())
	})

	t.Run("note is optional", func(t *testing.T) {
		_, err := usecase.ParseBooking(validBookingRequest())
		assert.NoError(t, err)
	})

	missing := map[string]func(r *request.CreateBookingRequest){
		"name":           func(r *request.CreateBookingRequest) { r.Name = "" },
		"email":          func(r *request.CreateBookingRequest) { r.Email = "" },
		"tax id":         func(r *request.CreateBookingRequest) { r.TaxID = "" },
		"phone":          func(r *request.CreateBookingRequest) { r.Phone = "" },
		"activity":       func(r *request.CreateBookingRequest) { r.Activity = "" },
		"date":           func(r *request.CreateBookingRequest) { r.Date = "" },
		"blank slot":     func(r *request.CreateBookingRequest) { r.TimeSlot = "   " },
		"blank name":     func(r *request.CreateBookingRequest) { r.Name = "  " },
		"blank tax id":   func(r *request.CreateBookingRequest) { r.TaxID = "\t" },
		"blank phone":    func(r *request.CreateBookingRequest) { r.Phone = " " },
		"blank activity": func(r *request.CreateBookingRequest) { r.Activity = "   " },
		"party size":     func(r *request.CreateBookingRequest) { r.PartySize = 0 },
		"billing type":   func(r *request.CreateBookingRequest) { r.BillingType = "" },
		"amount":         func(r *request.CreateBookingRequest) { r.Amount = decimal.Zero },
		"bad and empty":  func(r *request.CreateBookingRequest) { r.Name = ""; r.Email = "not-an-email" },
	}
	for name, mutate := range missing {
		t.Run("missing "+name, func(t *testing.T) {
			req := validBookingRequest()
			mutate(req)

			_, err := usecase.ParseBooking(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, usecase.ErrValidation))
			assert.True(t, errors.Is(err, usecase.ErrMissingFields))
		})
	}

	invalid := map[string]func(r *request.CreateBookingRequest){
		"email":          func(r *request.CreateBookingRequest) { r.Email = "ana.example.com" },
		"date format":    func(r *request.CreateBookingRequest) { r.Date = "20/03/2026" },
		"negative size":  func(r *request.CreateBookingRequest) { r.PartySize = -2 },
		"negative value": func(r *request.CreateBookingRequest) { r.Amount = decimal.RequireFromString("-10") },
		"sub-cent value": func(r *request.CreateBookingRequest) { r.Amount = decimal.RequireFromString("0.004") },
	}
	for name, mutate := range invalid {
		t.Run("invalid "+name, func(t *testing.T) {
			req := validBookingRequest()
			mutate(req)

			_, err := usecase.ParseBooking(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, usecase.ErrValidation))
			assert.True(t, errors.Is(err, usecase.ErrInvalidFields))
			assert.False(t, errors.Is(err, usecase.ErrMissingFields))
		})
	}

	for _, method := range []string{"BOLETO", "pix", "Credit_Card", " PIX"} {
		t.Run("billing method "+method, func(t *testing.T) {
			req := validBookingRequest()
			req.BillingType = method

			_, err := usecase.ParseBooking(req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, usecase.ErrValidation))
			assert.True(t, errors.Is(err, usecase.ErrInvalidBillingMethod))
		})
	}

	t.Run("nil request", func(t *testing.T) {
		_, err := usecase.ParseBooking(nil)
		assert.True(t, errors.Is(err, usecase.ErrMissingFields))
	})
}
