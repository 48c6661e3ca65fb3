package models

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation client supplied input is not acceptable
	ErrValidation = errors.New("validation failed")

	// ErrNotFound the record or document does not exist
	ErrNotFound = errors.New("not found")

	// ErrStore the document store call failed
	ErrStore = errors.New("document store failure")

	// ErrConflict the document store rejected a write due to a stale or missing revision
	ErrConflict = fmt.Errorf("%w: revision conflict", ErrStore)

	// ErrEncoding QR payload construction or encoding failed
	ErrEncoding = errors.New("encoding failure")

	// ErrUnresolvable scanned text does not contain a record ID
	ErrUnresolvable = &ValidationError{Field: "data", Message: "Unable to extract product id"}
)

// ValidationError describes why a client supplied field was rejected
type ValidationError struct {
	// Field the offending field
	Field string
	// Message human readable reason
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is support errors.Is against ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
