package usecase

import (
	"activity-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

var (
	pixSplitFee         = decimal.RequireFromString("1.00")
	creditCardSplitRate = decimal.RequireFromString("0.01")
)

// SplitAmount is what the secondary wallet receives out of total: total
// minus a fixed 1.00 for PIX, minus 1% for credit card. Rounded half-up to cents.
func SplitAmount(method entity.BillingMethod, total decimal.Decimal) decimal.Decimal {
	switch method {
	case entity.BillingMethodPix:
		return total.Sub(pixSplitFee).Round(2)
	case entity.BillingMethodCreditCard:
		return total.Sub(total.Mul(creditCardSplitRate)).Round(2)
	default:
		return decimal.Zero
	}
}
