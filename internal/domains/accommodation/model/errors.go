package model

import (
	"conference/shared/failure"
	"fmt"
	"net/http"
)

var ErrCapacityExceeded = &failure.Failure{Code: http.StatusConflict, Message: "insufficient accommodations available"}

// CapacityExceededError carries the availability seen when a reservation was refused.
type CapacityExceededError struct {
	Available int
	Requested int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("Insufficient accommodations available. Only %d accommodations left.", e.Available)
}

func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
