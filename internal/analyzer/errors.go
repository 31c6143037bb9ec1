package analyzer

import (
	"errors"
	"fmt"
)

// ErrUnavailable wraps transport failures reaching an analysis service.
var ErrUnavailable = errors.New("analysis service unavailable")

// ErrInvalidResult indicates an analyzer returned a body that does not
// match the result schema.
type ErrInvalidResult struct {
	Err error
}

func (e *ErrInvalidResult) Error() string {
	return fmt.Sprintf("invalid analyzer result: %v", e.Err)
}

func (e *ErrInvalidResult) Unwrap() error { return e.Err }

// ServiceError is a non-2xx response from an analysis service.
type ServiceError struct {
	Modality   string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s analysis failed (%d): %s", e.Modality, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s analysis failed with status %d", e.Modality, e.StatusCode)
}
