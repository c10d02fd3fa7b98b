package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrMissingPrompt indicates the request carried no prompt text.
	ErrMissingPrompt = errors.New("prompt is required")

	// ErrInvalidModel indicates a model name that cannot be placed in the upstream URL.
	ErrInvalidModel = errors.New("invalid model name")

	// ErrMissingCredential indicates no API key is configured for the caller.
	ErrMissingCredential = errors.New("API key not configured")
)

// UpstreamError is returned when the upstream answers with a non-2xx status.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Gemini API error: %d", e.Status)
}

// IsAuthFailure reports whether the upstream rejected the credential.
func (e *UpstreamError) IsAuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// InternalError wraps a transport failure or an unusable upstream response.
// Its message is the cause's message.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause == nil {
		return "internal error"
	}
	return e.Cause.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}
