package storefront

import (
	"errors"
	"fmt"
)

// Local validation failures, raised before any network call.
var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrUnauthenticated = errors.New("authentication required")
	ErrNotFound        = errors.New("not found")
)

// ErrSubmissionUnknown marks an order submission whose server-side outcome
// could not be determined (the request may or may not have created an
// order). Retrying with the same idempotency key is safe; retrying with a
// fresh key may duplicate the order.
var ErrSubmissionUnknown = errors.New("order submission status unknown")

// APIError is a definitive server response with a non-2xx status; the
// request was received and rejected.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Body)
}

// IsAPIError unwraps err into an *APIError when the server reported a
// definitive failure.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError

	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
