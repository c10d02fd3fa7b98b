package chat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/launchpad/internal/chat"
	"github.com/davidbz/launchpad/internal/domain"
)

func TestMessageForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "should map unreachable endpoints",
			err:  fmt.Errorf("%w: dial tcp: connection refused", chat.ErrUnreachable),
			want: chat.MessageUnreachable,
		},
		{
			name: "should map a missing credential",
			err:  domain.ErrMissingCredential,
			want: chat.MessageMissingCredential,
		},
		{
			name: "should map 401 to the authentication message",
			err:  &domain.UpstreamError{Status: 401},
			want: chat.MessageAuthFailed,
		},
		{
			name: "should map 403 to the authentication message",
			err:  &domain.UpstreamError{Status: 403, Body: `{"error":"API key invalid"}`},
			want: chat.MessageAuthFailed,
		},
		{
			name: "should map 400 to the bad request message",
			err:  &domain.UpstreamError{Status: 400},
			want: chat.MessageBadRequest,
		},
		{
			name: "should map 429 to the rate limit message",
			err:  &domain.UpstreamError{Status: 429},
			want: chat.MessageRateLimited,
		},
		{
			name: "should map 5xx to the unavailable message",
			err:  &domain.UpstreamError{Status: 503},
			want: chat.MessageUpstreamDown,
		},
		{
			name: "should name other 4xx statuses",
			err:  &domain.UpstreamError{Status: 404},
			want: "❌ Gemini API rejected the request (status 404).",
		},
		{
			name: "should fall back to the general tip",
			err:  errors.New("something odd"),
			want: chat.MessageFallbackTip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, chat.MessageForError(tt.err))
		})
	}

	t.Run("should never echo the upstream body", func(t *testing.T) {
		msg := chat.MessageForError(&domain.UpstreamError{Status: 403, Body: `{"error":"API key invalid"}`})
		require.NotContains(t, msg, "API key invalid")
	})
}
