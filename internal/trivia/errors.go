package trivia

import "errors"

var (
	// ErrNotFound is returned when a question, category, or page of
	// results does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrExhausted signals that no eligible question remains for the
	// current quiz round. It is a normal terminal condition, not a failure.
	ErrExhausted = errors.New("question pool exhausted")
	// ErrUnprocessable is returned when valid input cannot be acted on,
	// e.g. a delete that fails mid-flight.
	ErrUnprocessable = errors.New("unprocessable request")
)

// ValidationError reports malformed or missing request input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
