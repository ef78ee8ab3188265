package market

import "errors"

// ValidationError is an expected, user-facing rejection of an input. It is
// always carried as a value; the API layer maps it to a 4xx response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// State-conflict failures: the listing moved under the caller's feet.
var (
	ErrListingEnded   = errors.New("auction ended")
	ErrNoBuyoutPrice  = errors.New("listing has no buyout price")
	ErrNotSeller      = errors.New("only the seller can cancel the auction")
	ErrListingHasBids = errors.New("cannot cancel a listing that already has bids")
)
