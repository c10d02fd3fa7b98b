// Package echo provides an offline upstream that answers generateContent
// payloads by echoing the prompt back in a Gemini-shaped body.
package echo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/observability"
)

const (
	upstreamName = "echo"
	echoPrefix   = "[echo] "
)

// Upstream implements domain.Upstream by echoing prompts.
type Upstream struct {
	name string
}

// NewUpstream creates a new echo upstream.
func NewUpstream() *Upstream {
	return &Upstream{name: upstreamName}
}

type response struct {
	Candidates    []candidate   `json:"candidates"`
	UsageMetadata usageMetadata `json:"usageMetadata"`
	ModelVersion  string        `json:"modelVersion"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
	Index        int     `json:"index"`
}

type content struct {
	Parts []domain.Part `json:"parts"`
	Role  string        `json:"role"`
}

type usageMetadata struct {
	PromptTokenCount     int `json:"promptTokenCount"`
	CandidatesTokenCount int `json:"candidatesTokenCount"`
	TotalTokenCount      int `json:"totalTokenCount"`
}

// GenerateContent returns a body whose first candidate echoes the prompt text.
func (u *Upstream) GenerateContent(
	ctx context.Context,
	model string,
	payload *domain.GenerateContentRequest,
) ([]byte, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	prompt := promptText(payload)
	echoed := echoPrefix + prompt

	// Count tokens (simple word-based counting), capped by the requested budget.
	promptTokens := countTokens(prompt)
	completionTokens := countTokens(echoed)
	if limit := payload.GenerationConfig.MaxOutputTokens; limit > 0 && completionTokens > limit {
		completionTokens = limit
	}

	observability.FromContext(ctx).Debug("echoing prompt",
		observability.Int("prompt_tokens", promptTokens),
		observability.Int("completion_tokens", completionTokens),
	)

	body, err := json.Marshal(response{
		Candidates: []candidate{{
			Content: content{
				Parts: []domain.Part{{Text: echoed}},
				Role:  "model",
			},
			FinishReason: "STOP",
			Index:        0,
		}},
		UsageMetadata: usageMetadata{
			PromptTokenCount:     promptTokens,
			CandidatesTokenCount: completionTokens,
			TotalTokenCount:      promptTokens + completionTokens,
		},
		ModelVersion: model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal echo response: %w", err)
	}

	return body, nil
}

// Name returns the upstream identifier.
func (u *Upstream) Name() string {
	return u.name
}

// promptText joins every part of every content block.
func promptText(payload *domain.GenerateContentRequest) string {
	var builder strings.Builder
	for _, c := range payload.Contents {
		for _, part := range c.Parts {
			builder.WriteString(part.Text)
		}
	}
	return builder.String()
}

// countTokens performs simple word-based token counting.
func countTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(strings.Fields(text))
}
