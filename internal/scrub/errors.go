package scrub

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the text to scrub is empty after trimming.
var ErrEmptyInput = errors.New("enter some text to scrub")

// ModelUnavailableError reports that the redaction model cannot be used.
// ServiceDown distinguishes an unreachable service from a reachable one
// that does not have the model installed.
type ModelUnavailableError struct {
	Model       string
	ServiceDown bool
	// Guidance is the command that installs the model. Empty when the
	// service itself is down.
	Guidance string
	Err      error
}

func (e *ModelUnavailableError) Error() string {
	switch {
	case e.ServiceDown:
		return fmt.Sprintf("ollama unavailable: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("cannot list models: %v", e.Err)
	default:
		return fmt.Sprintf("model %s is not installed; run: %s", e.Model, e.Guidance)
	}
}

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

// IsModelUnavailable reports whether err is a ModelUnavailableError.
func IsModelUnavailable(err error) bool {
	var target *ModelUnavailableError
	return errors.As(err, &target)
}
