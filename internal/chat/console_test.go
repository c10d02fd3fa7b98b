package chat_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/launchpad/internal/chat"
)

func TestConsole_Run(t *testing.T) {
	t.Run("should chat until quit", func(t *testing.T) {
		transport := &mockTransport{}
		session := chat.NewSession(transport, chat.Greeting)
		var out bytes.Buffer

		console := chat.NewConsole(session, strings.NewReader("hello\n\n/quit\nnever sent\n"), &out)

		require.NoError(t, console.Run(context.Background()))
		require.Equal(t, []string{"hello"}, transport.prompts)
		require.Contains(t, out.String(), "[assistant] "+chat.Greeting)
		require.Contains(t, out.String(), "[assistant] re: hello")
		require.Len(t, session.Transcript(), 3)
	})

	t.Run("should list and send suggestions", func(t *testing.T) {
		transport := &mockTransport{}
		session := chat.NewSession(transport, "")
		var out bytes.Buffer

		console := chat.NewConsole(session, strings.NewReader("/suggest\n/ask 3\n/ask 9\n"), &out)

		require.NoError(t, console.Run(context.Background()))
		require.Contains(t, out.String(), "1. Validate my startup idea")
		require.Contains(t, out.String(), "usage: /ask <1-4>")
		require.Equal(t, []string{"Create a business plan"}, transport.prompts)
	})

	t.Run("should stop at end of input", func(t *testing.T) {
		session := chat.NewSession(&mockTransport{}, "")

		console := chat.NewConsole(session, strings.NewReader(""), &bytes.Buffer{})

		require.NoError(t, console.Run(context.Background()))
		require.Empty(t, session.Transcript())
	})
}
