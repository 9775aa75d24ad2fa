package usecase

import (
	"sort"
	"strings"

	"activity-booking/internal/data/entity"
	"activity-booking/internal/dto/request"
	"activity-booking/pkg/utils"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// BookingCommand is a fully validated booking request. Nothing reaches a
// collaborator before a request has been turned into one.
type BookingCommand struct {
	Name      string
	Email     string
	TaxID     string
	Phone     string
	Activity  string
	Date      string
	TimeSlot  string
	PartySize int
	Amount    decimal.Decimal
	Note      string
	Method    entity.BillingMethod
}

// ParseBooking validates presence first, then formats, then the billing method.
func ParseBooking(req *request.CreateBookingRequest) (BookingCommand, error) {
	if req == nil {
		return BookingCommand{}, mark(ErrMissingFields, ErrValidation)
	}

	normalized := *req
	for _, field := range []*string{
		&normalized.Name, &normalized.Email, &normalized.TaxID, &normalized.Phone,
		&normalized.Activity, &normalized.Date, &normalized.TimeSlot, &normalized.Note,
	} {
		*field = strings.TrimSpace(*field)
	}

	fieldErrs := utils.ValidateStruct(&normalized)
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	// amounts that round to zero cents are invalid, not missing
	amount := normalized.Amount.Round(2)
	if normalized.Amount.IsZero() {
		fieldErrs["Amount"] = utils.MsgRequired
	} else if !amount.IsPositive() {
		fieldErrs["Amount"] = "Must be at least 0.01"
	}

	if len(fieldErrs) > 0 {
		var missing []string
		for field, msg := range fieldErrs {
			if msg == utils.MsgRequired {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			return BookingCommand{}, mark(
				errors.Wrapf(ErrMissingFields, "%s", strings.Join(missing, ", ")),
				ErrValidation,
			)
		}
		return BookingCommand{}, mark(
			errors.Wrapf(ErrInvalidFields, "%s", utils.FormatValidationErrors(fieldErrs)),
			ErrValidation,
		)
	}

	method, ok := entity.ParseBillingMethod(normalized.BillingType)
	if !ok {
		return BookingCommand{}, mark(
			errors.Wrapf(ErrInvalidBillingMethod, "%q", normalized.BillingType),
			ErrValidation,
		)
	}

	return BookingCommand{
		Name:      normalized.Name,
		Email:     normalized.Email,
		TaxID:     normalized.TaxID,
		Phone:     normalized.Phone,
		Activity:  normalized.Activity,
		Date:      normalized.Date,
		TimeSlot:  normalized.TimeSlot,
		PartySize: normalized.PartySize,
		Amount:    amount,
		Note:      normalized.Note,
		Method:    method,
	}, nil
}
