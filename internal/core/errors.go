package core

// ValidationError is a user-facing error raised when an explicit action
// cannot proceed because of missing or conflicting data. Callers surface it
// to the user; automatic paths (order confirmation) catch and log it instead.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}
