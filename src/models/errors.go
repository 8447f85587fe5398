package models

// ValidationError signals rejected input (empty symbol, non-positive
// price or quantity, unknown side). Handlers map it to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
