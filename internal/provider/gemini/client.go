// Package gemini forwards generateContent payloads to the Gemini REST API.
// Bodies travel verbatim in both directions: the relay contract is to hand
// the caller exactly what Gemini answered.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/observability"
)

const upstreamName = "gemini"

// Client wraps the HTTP client for Gemini API calls.
type Client struct {
	apiKey     string
	baseURL    string
	apiVersion string
	httpClient *http.Client
}

// NewClient creates a new Gemini HTTP client.
// An empty credential is accepted; every call then fails upstream with an
// authentication status.
func NewClient(config Config) *Client {
	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = "v1"
	}

	return &Client{
		apiKey:     config.Credential(),
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
	}
}

// Name returns the upstream identifier.
func (c *Client) Name() string {
	return upstreamName
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// GenerateContent posts one payload to models/{model}:generateContent.
func (c *Client) GenerateContent(
	ctx context.Context,
	model string,
	payload *domain.GenerateContentRequest,
) ([]byte, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(model), bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API", observability.Int("payload_size", len(reqBody)))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// *url.Error carries the full URL, which includes the key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	logger.Debug("Gemini API call succeeded", observability.Int("status", resp.StatusCode))

	return body, nil
}

// endpoint builds {base}/{version}/models/{model}:generateContent?key={key}.
func (c *Client) endpoint(model string) string {
	u := fmt.Sprintf("%s/%s/models/%s:generateContent", c.baseURL, c.apiVersion, url.PathEscape(model))
	if c.apiKey == "" {
		return u
	}
	return u + "?" + url.Values{"key": []string{c.apiKey}}.Encode()
}
