package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/genai"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/observability"
)

// DirectConfig contains settings for calling Gemini without the relay.
// The key is exposed to whoever runs the client.
type DirectConfig struct {
	APIKey          string `env:"VITE_GEMINI_API_KEY"`
	BaseURL         string `env:"GEMINI_BASE_URL"`
	Model           string `env:"CHAT_MODEL"             envDefault:"gemini-pro"`
	MaxOutputTokens int    `env:"CHAT_MAX_OUTPUT_TOKENS" envDefault:"1000"`
	Timeout         int    `env:"CHAT_TIMEOUT"           envDefault:"60"`
}

// DirectTransport calls Gemini with the genai SDK, wrapping prompts in the adviser persona.
type DirectTransport struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
}

// NewDirectTransport creates a direct transport. Without a key no client is
// built and every Send fails with domain.ErrMissingCredential.
func NewDirectTransport(ctx context.Context, config DirectConfig) (*DirectTransport, error) {
	model := config.Model
	if model == "" {
		model = domain.DefaultModel
	}
	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens <= 0 {
		maxOutputTokens = domain.DefaultMaxOutputTokens
	}

	transport := &DirectTransport{
		client:          nil,
		model:           model,
		maxOutputTokens: int32(maxOutputTokens), //nolint:gosec // bounded by configuration
	}

	if config.APIKey == "" {
		return transport, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    config.BaseURL,
			APIVersion: "v1",
		},
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	transport.client = client

	return transport, nil
}

// Name returns the transport identifier.
func (t *DirectTransport) Name() string {
	return "direct"
}

// Send issues one generateContent call and returns the response as JSON.
func (t *DirectTransport) Send(ctx context.Context, prompt string) ([]byte, error) {
	if t.client == nil {
		return nil, domain.ErrMissingCredential
	}

	resp, err := t.client.Models.GenerateContent(
		ctx,
		t.model,
		genai.Text(AdviserPrompt(prompt)),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr[float32](domain.RelayTemperature),
			MaxOutputTokens: t.maxOutputTokens,
		},
	)
	if err != nil {
		return nil, mapGenAIError(ctx, err)
	}

	body, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return body, nil
}

func mapGenAIError(ctx context.Context, err error) error {
	logger := observability.FromContext(ctx)

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		logger.Warn("Gemini API error", observability.Int("status", apiErr.Code))
		return &domain.UpstreamError{Status: apiErr.Code, Body: apiErr.Message}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		logger.Warn("Gemini API error", observability.Int("status", apiErrPtr.Code))
		return &domain.UpstreamError{Status: apiErrPtr.Code, Body: apiErrPtr.Message}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// The URL may carry the key; keep only the cause.
		return fmt.Errorf("%w: %w", ErrUnreachable, urlErr.Err)
	}

	return fmt.Errorf("generate content: %w", err)
}

var _ Transport = (*DirectTransport)(nil)
