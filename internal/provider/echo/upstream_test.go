package echo_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/provider/echo"
)

type echoBody struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
			Role string `json:"role"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

func TestNewUpstream(t *testing.T) {
	upstream := echo.NewUpstream()

	require.NotNil(t, upstream)
	require.Equal(t, "echo", upstream.Name())
}

func TestGenerateContent_Success(t *testing.T) {
	upstream := echo.NewUpstream()
	payload := domain.NewGenerateContentRequest(&domain.PromptRequest{
		Text:            "Hello world",
		Model:           "gemini-pro",
		MaxOutputTokens: 1000,
		Temperature:     domain.RelayTemperature,
	})

	raw, err := upstream.GenerateContent(context.Background(), "gemini-pro", payload)
	require.NoError(t, err)

	var body echoBody
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Len(t, body.Candidates, 1)
	require.Equal(t, "[echo] Hello world", body.Candidates[0].Content.Parts[0].Text)
	require.Equal(t, "model", body.Candidates[0].Content.Role)
	require.Equal(t, "STOP", body.Candidates[0].FinishReason)
	require.Equal(t, "gemini-pro", body.ModelVersion)
	require.Equal(t, 2, body.UsageMetadata.PromptTokenCount)     // "Hello" "world"
	require.Equal(t, 3, body.UsageMetadata.CandidatesTokenCount) // "[echo]" "Hello" "world"
	require.Equal(t, 5, body.UsageMetadata.TotalTokenCount)
}

func TestGenerateContent_CapsCompletionTokens(t *testing.T) {
	upstream := echo.NewUpstream()
	payload := domain.NewGenerateContentRequest(&domain.PromptRequest{
		Text:            "one two three four five",
		MaxOutputTokens: 2,
	})

	raw, err := upstream.GenerateContent(context.Background(), "gemini-pro", payload)
	require.NoError(t, err)

	var body echoBody
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, 2, body.UsageMetadata.CandidatesTokenCount)
}

func TestGenerateContent_EmptyPrompt(t *testing.T) {
	upstream := echo.NewUpstream()

	raw, err := upstream.GenerateContent(context.Background(), "gemini-pro", &domain.GenerateContentRequest{})
	require.NoError(t, err)

	var body echoBody
	require.NoError(t, json.Unmarshal(raw, &body))
	require.Equal(t, "[echo] ", body.Candidates[0].Content.Parts[0].Text)
	require.Equal(t, 0, body.UsageMetadata.PromptTokenCount)
}

func TestGenerateContent_NilPayload(t *testing.T) {
	upstream := echo.NewUpstream()

	raw, err := upstream.GenerateContent(context.Background(), "gemini-pro", nil)

	require.Error(t, err)
	require.Nil(t, raw)
	require.Contains(t, err.Error(), "payload cannot be nil")
}
