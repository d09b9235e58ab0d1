package places

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both a missing local record and an external
	// place that could not be resolved
	ErrNotFound = errors.New("not found")
	// ErrInvalidPayload marks a structurally incomplete external response,
	// e.g. one without a place identifier
	ErrInvalidPayload = errors.New("invalid external payload")
)

// ApiError is a transport failure or non-success response from the external
// Places API. Kept distinct from ErrNotFound so it can be observed separately.
type ApiError struct {
	StatusCode int
	Err        error
}

func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("places api: %v", e.Err)
	}
	return fmt.Sprintf("places api: unexpected status %d", e.StatusCode)
}

func (e *ApiError) Unwrap() error {
	return e.Err
}
