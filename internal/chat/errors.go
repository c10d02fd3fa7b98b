package chat

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/davidbz/launchpad/internal/domain"
)

var (
	// ErrBusy indicates a submission while another request is outstanding.
	ErrBusy = errors.New("a request is already in progress")

	// ErrUnreachable indicates the transport could not reach its endpoint.
	ErrUnreachable = errors.New("endpoint unreachable")
)

// User-facing messages appended in place of a reply.
const (
	MessageUnreachable       = "❌ Cannot connect to the AI service. Please check your internet connection."
	MessageMissingCredential = "❌ API key not configured. Please add VITE_GEMINI_API_KEY to your .env file."
	MessageAuthFailed        = "❌ Authentication failed. Please check your Gemini API key."
	MessageBadRequest        = "❌ Bad request to Gemini API. Please try rephrasing your question."
	MessageRateLimited       = "❌ Too many requests. Please wait a moment and try again."
	MessageUpstreamDown      = "❌ The AI service is having trouble right now. Please try again later."
	MessageFallbackTip       = "I'm having trouble connecting right now. Here's a general tip: " +
		"Focus on solving a real problem for your target customers. " +
		"Validate your idea through customer interviews before building."
)

// MessageForError maps a transport error to the message shown in the transcript.
func MessageForError(err error) string {
	if errors.Is(err, ErrUnreachable) {
		return MessageUnreachable
	}
	if errors.Is(err, domain.ErrMissingCredential) {
		return MessageMissingCredential
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		return messageForStatus(upstreamErr.Status)
	}

	return MessageFallbackTip
}

func messageForStatus(status int) string {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return MessageAuthFailed
	case status == http.StatusBadRequest:
		return MessageBadRequest
	case status == http.StatusTooManyRequests:
		return MessageRateLimited
	case status >= http.StatusInternalServerError:
		return MessageUpstreamDown
	default:
		return fmt.Sprintf("❌ Gemini API rejected the request (status %d).", status)
	}
}
