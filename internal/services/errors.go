package services

import "fmt"

const missingIdeaMessage = "Please provide userIdea"

// ValidationError reports request input that is missing or unusable.
// It is detected before any model call and maps to a client error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrMissingIdea is returned when the request carries no idea
var ErrMissingIdea = &ValidationError{Message: missingIdeaMessage}

// GenerationError reports a failed model call, including timeouts.
// Error() surfaces the underlying message unchanged.
type GenerationError struct {
	Strategy string
	Err      error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s generation failed", e.Strategy)
	}
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
