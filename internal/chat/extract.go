package chat

import (
	"errors"

	"github.com/tidwall/gjson"
)

const textPath = "candidates.0.content.parts.0.text"

// FallbackText replaces the assistant reply when the response has no text.
const FallbackText = "I received an unexpected response format. Let me try to help you differently. " +
	"Could you please rephrase your question?"

// ErrExtractionFailed indicates the response has no non-empty candidates[0].content.parts[0].text.
var ErrExtractionFailed = errors.New("response has no candidate text")

// Extract returns the first candidate's first part text.
func Extract(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrExtractionFailed
	}

	result := gjson.GetBytes(body, textPath)
	if result.Type != gjson.String || result.String() == "" {
		return "", ErrExtractionFailed
	}

	return result.String(), nil
}
