package chat_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/launchpad/internal/chat"
)

func TestExtract(t *testing.T) {
	t.Run("should return the first candidate's first part", func(t *testing.T) {
		body := []byte(`{"candidates":[{"content":{"parts":[{"text":"Talk to customers."},{"text":"ignored"}]}},{"content":{"parts":[{"text":"second"}]}}]}`)

		text, err := chat.Extract(body)

		require.NoError(t, err)
		require.Equal(t, "Talk to customers.", text)
	})

	t.Run("should fail on an empty text", func(t *testing.T) {
		text, err := chat.Extract([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`))

		require.ErrorIs(t, err, chat.ErrExtractionFailed)
		require.Empty(t, text)
	})

	t.Run("should fail when the path is missing or malformed", func(t *testing.T) {
		bodies := []string{
			`{}`,
			`{"candidates":[]}`,
			`{"candidates":[{}]}`,
			`{"candidates":[{"content":{"parts":[]}}]}`,
			`{"candidates":[{"content":{"parts":[{"text":42}]}}]}`,
			`{"candidates":"nope"}`,
			`not json`,
			``,
		}
		for _, body := range bodies {
			_, err := chat.Extract([]byte(body))
			require.ErrorIs(t, err, chat.ErrExtractionFailed, body)
		}
	})
}
