package domain

import "encoding/json"

const (
	// DefaultModel is used when a relay request names no model.
	DefaultModel = "gemini-pro"

	// DefaultMaxOutputTokens is used when a relay request carries no positive token budget.
	DefaultMaxOutputTokens = 1000

	// RelayTemperature is the fixed sampling temperature sent upstream.
	RelayTemperature = 0.7
)

// RelayRequest is the inbound body of POST /api/gemini.
type RelayRequest struct {
	Prompt          string `json:"prompt"`
	Model           string `json:"model,omitempty"`
	MaxOutputTokens int    `json:"maxOutputTokens,omitempty"`
}

// PromptRequest is a validated, defaulted prompt ready to be sent upstream.
type PromptRequest struct {
	Text            string
	Model           string
	MaxOutputTokens int
	Temperature     float64
}

// RelayResponse carries the upstream body of a successful call, untouched.
type RelayResponse struct {
	Body json.RawMessage
}

// GenerateContentRequest is the generateContent payload understood by the upstream.
type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

// Content is a single turn of a generateContent request.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is one text fragment inside a Content.
type Part struct {
	Text string `json:"text"`
}

// GenerationConfig carries the sampling parameters of a generateContent request.
type GenerationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

// NewGenerateContentRequest wraps a prompt into a single-turn payload.
func NewGenerateContentRequest(prompt *PromptRequest) *GenerateContentRequest {
	return &GenerateContentRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt.Text}}},
		},
		GenerationConfig: GenerationConfig{
			MaxOutputTokens: prompt.MaxOutputTokens,
			Temperature:     prompt.Temperature,
		},
	}
}
