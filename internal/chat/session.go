package chat

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/davidbz/launchpad/internal/observability"
)

// Session owns one conversation and the transport it is sent over.
type Session struct {
	transport  Transport
	transcript *Transcript
	loading    atomic.Bool
}

// NewSession creates a session. A non-empty greeting is seeded as the first assistant message.
func NewSession(transport Transport, greeting string) *Session {
	s := &Session{
		transport:  transport,
		transcript: NewTranscript(),
		loading:    atomic.Bool{},
	}
	if greeting != "" {
		s.transcript.Append(NewMessage(RoleAssistant, greeting))
	}
	return s
}

// Submit sends input and appends exactly one user and one assistant message.
// Blank input is ignored and returns (nil, nil). A submission while another
// is outstanding returns ErrBusy and leaves the transcript untouched.
// Transport failures never surface; they become the assistant message.
func (s *Session) Submit(ctx context.Context, input string) (*Message, error) {
	prompt := strings.TrimSpace(input)
	if prompt == "" {
		return nil, nil //nolint:nilnil // blank input is a no-op
	}

	if !s.loading.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.loading.Store(false)

	s.transcript.Append(NewMessage(RoleUser, prompt))

	ctx = observability.WithRequestID(ctx, observability.GenerateRequestID())
	reply := s.respond(ctx, prompt)

	msg := NewMessage(RoleAssistant, reply)
	s.transcript.Append(msg)

	return &msg, nil
}

func (s *Session) respond(ctx context.Context, prompt string) string {
	logger := observability.FromContext(ctx)

	body, err := s.transport.Send(ctx, prompt)
	if err != nil {
		logger.Warn("chat request failed",
			observability.String("transport", s.transport.Name()),
			observability.Error(err))
		return MessageForError(err)
	}

	text, err := Extract(body)
	if err != nil {
		logger.Warn("unexpected response format",
			observability.Int("body_size", len(body)))
		return FallbackText
	}

	return text
}

// Loading reports whether a request is outstanding.
func (s *Session) Loading() bool {
	return s.loading.Load()
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []Message {
	return s.transcript.Messages()
}

// Suggestions returns the canned prompts offered next to the input.
func (s *Session) Suggestions() []Suggestion {
	return QuickSuggestions()
}
