package chat_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/launchpad/internal/chat"
	"github.com/davidbz/launchpad/internal/domain"
)

func TestRelayTransport_Send(t *testing.T) {
	t.Run("should post the raw prompt and return the body", func(t *testing.T) {
		var gotBody, gotContentType, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`))
		}))
		defer server.Close()

		transport := chat.NewRelayTransport(chat.RelayConfig{URL: server.URL, Timeout: 5})

		body, err := transport.Send(context.Background(), "How do I validate a startup idea?")

		require.NoError(t, err)
		require.JSONEq(t, `{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}`, string(body))
		require.Equal(t, http.MethodPost, gotMethod)
		require.Equal(t, "application/json", gotContentType)
		require.JSONEq(t, `{"prompt":"How do I validate a startup idea?"}`, gotBody)
	})

	t.Run("should include configured model and token budget", func(t *testing.T) {
		var gotBody string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			gotBody = string(raw)
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		transport := chat.NewRelayTransport(chat.RelayConfig{
			URL:             server.URL,
			Model:           "gemini-1.5-flash",
			MaxOutputTokens: 256,
		})

		_, err := transport.Send(context.Background(), "hi")

		require.NoError(t, err)
		require.JSONEq(t, `{"prompt":"hi","model":"gemini-1.5-flash","maxOutputTokens":256}`, gotBody)
	})

	t.Run("should map the relay envelope to an upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Gemini API error: 403","details":"{\"error\":\"API key invalid\"}"}`))
		}))
		defer server.Close()

		transport := chat.NewRelayTransport(chat.RelayConfig{URL: server.URL})

		_, err := transport.Send(context.Background(), "hi")

		var upstreamErr *domain.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		require.Equal(t, http.StatusForbidden, upstreamErr.Status)
		require.JSONEq(t, `{"error":"API key invalid"}`, upstreamErr.Body)
	})

	t.Run("should keep the relay message when there are no details", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"dial tcp: connection refused"}`))
		}))
		defer server.Close()

		transport := chat.NewRelayTransport(chat.RelayConfig{URL: server.URL})

		_, err := transport.Send(context.Background(), "hi")

		var upstreamErr *domain.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		require.Equal(t, http.StatusInternalServerError, upstreamErr.Status)
		require.Equal(t, "dial tcp: connection refused", upstreamErr.Body)
	})

	t.Run("should report an unreachable relay", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		url := server.URL
		server.Close()

		transport := chat.NewRelayTransport(chat.RelayConfig{URL: url, Timeout: 5})

		_, err := transport.Send(context.Background(), "hi")

		require.ErrorIs(t, err, chat.ErrUnreachable)
	})

	t.Run("should name itself", func(t *testing.T) {
		require.Equal(t, "relay", chat.NewRelayTransport(chat.RelayConfig{}).Name())
	})
}
