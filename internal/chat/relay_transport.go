package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/observability"
)

// RelayConfig contains relay transport settings. Timeout is in seconds.
type RelayConfig struct {
	URL             string `env:"CHAT_RELAY_URL"         envDefault:"http://localhost:3002/api/gemini"`
	Model           string `env:"CHAT_MODEL"`
	MaxOutputTokens int    `env:"CHAT_MAX_OUTPUT_TOKENS"`
	Timeout         int    `env:"CHAT_TIMEOUT"           envDefault:"60"`
}

// relayErrorBody is the error envelope written by the relay.
type relayErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// RelayTransport sends raw prompts to the relay endpoint.
type RelayTransport struct {
	config     RelayConfig
	httpClient *http.Client
}

// NewRelayTransport creates a new relay transport.
func NewRelayTransport(config RelayConfig) *RelayTransport {
	return &RelayTransport{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name returns the transport identifier.
func (t *RelayTransport) Name() string {
	return "relay"
}

// Send posts {prompt, model?, maxOutputTokens?} to the relay.
func (t *RelayTransport) Send(ctx context.Context, prompt string) ([]byte, error) {
	reqBody, err := json.Marshal(domain.RelayRequest{
		Prompt:          prompt,
		Model:           t.config.Model,
		MaxOutputTokens: t.config.MaxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.config.URL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		observability.FromContext(ctx).Warn("relay returned an error",
			observability.Int("status", resp.StatusCode),
			observability.String("body", string(body)))
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Body: errorDetails(body)}
	}

	return body, nil
}

// errorDetails prefers the upstream details carried in the relay envelope.
func errorDetails(body []byte) string {
	var envelope relayErrorBody
	if err := json.Unmarshal(body, &envelope); err != nil {
		return string(body)
	}
	if envelope.Details != "" {
		return envelope.Details
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return string(body)
}

var _ Transport = (*RelayTransport)(nil)
