package fx

import "errors"

// Domain errors shared by the packages that sit at the edges of the core.
// The core itself never returns errors from event handlers or ticks.
var (
	// ErrInvalidConfig indicates a tuning value outside its valid range.
	ErrInvalidConfig = errors.New("fx: invalid configuration")

	// ErrMalformedTrace indicates a recorded input trace that cannot be parsed.
	ErrMalformedTrace = errors.New("fx: malformed input trace")

	// ErrEmptyTrace indicates a playback was asked to run with no events.
	ErrEmptyTrace = errors.New("fx: input trace has no events")

	// ErrClosed indicates a runner asked to drive a session a second time.
	ErrClosed = errors.New("fx: session closed")
)

// FieldError wraps an error with the name of the offending setting.
type FieldError struct {
	Field   string
	Message string
	Wrapped error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Unwrap() error {
	return e.Wrapped
}
