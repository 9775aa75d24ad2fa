package usecase

import "github.com/cockroachdb/errors"

// Error kinds. Every error returned by the reservation workflow is marked
// with exactly one of them; handlers map kinds to status codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrCapacity   = errors.New("capacity exceeded")
	ErrGateway    = errors.New("payment gateway failure")
	ErrStore      = errors.New("reservation store failure")
	ErrNotFound   = errors.New("unknown reservation")
	ErrNotify     = errors.New("notification failure")
)

// Reasons, found in the cause chain under their kind.
var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrInvalidFields        = errors.New("invalid field values")
	ErrInvalidBillingMethod = errors.New("invalid billing method")
	ErrMissingReference     = errors.New("missing external reference")
	ErrQRCodeFetch          = errors.New("pix qr code fetch failed")
	ErrWindowBusy           = errors.New("capacity window busy")
)

var kinds = []error{ErrValidation, ErrCapacity, ErrGateway, ErrStore, ErrNotFound, ErrNotify}

func mark(err error, marks ...error) error {
	for _, m := range marks {
		err = errors.Mark(err, m)
	}
	return err
}

// Kind returns the error kind err is marked with, or nil.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
