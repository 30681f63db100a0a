package model

import "fmt"

// APIError is the normalized failure shape for backend calls. Status is the
// HTTP status code, or 0 for transport-level failures (including timeouts).
// Message carries the backend-provided error text when present, else a
// generic description. Callers never see raw transport errors.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("api request failed: %s", e.Message)
	}
	return fmt.Sprintf("api request failed (%d): %s", e.Status, e.Message)
}

// NotFound reports whether the backend answered 404. Delete flows treat this
// as already-satisfied success.
func (e *APIError) NotFound() bool {
	return e.Status == 404
}
