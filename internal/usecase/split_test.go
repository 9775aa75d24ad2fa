package usecase_test

import (
	"testing"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name   string
		method entity.BillingMethod
		total  string
		want   string
	}{
		{name: "pix subtracts fixed fee", method: entity.BillingMethodPix, total: "150.00", want: "149.00"},
		{name: "pix fee eats the whole charge", method: entity.BillingMethodPix, total: "1.00", want: "0.00"},
		{name: "pix below fee", method: entity.BillingMethodPix, total: "0.50", want: "-0.50"},
		{name: "card subtracts one percent", method: entity.BillingMethodCreditCard, total: "100.00", want: "99.00"},
		{name: "card rounds half up", method: entity.BillingMethodCreditCard, total: "10.05", want: "9.95"},
		{name: "card rounds down below half", method: entity.BillingMethodCreditCard, total: "33.33", want: "33.00"},
		{name: "unknown method", method: entity.BillingMethod("BOLETO"), total: "100.00", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.SplitAmount(tt.method, decimal.RequireFromString(tt.total))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
