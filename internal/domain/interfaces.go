package domain

import (
	"context"
	"time"
)

// Upstream represents the generative-language API behind the relay.
type Upstream interface {
	// GenerateContent sends one payload for the given model.
	// On a 2xx answer it returns the raw body; on any other status it
	// returns *UpstreamError; anything else is a transport failure.
	GenerateContent(ctx context.Context, model string, payload *GenerateContentRequest) ([]byte, error)

	// Name returns the upstream identifier.
	Name() string
}

// Outcome labels the terminal result of one relay request.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeMissingPrompt  Outcome = "missing_prompt"
	OutcomeInvalidRequest Outcome = "invalid_request"
	OutcomeUpstreamError  Outcome = "upstream_error"
	OutcomeInternalError  Outcome = "internal_error"
)

// MetricsRecorder records relay outcomes for observability.
type MetricsRecorder interface {
	// ObserveOutcome counts one terminal relay result.
	ObserveOutcome(outcome Outcome)

	// ObserveUpstream records the latency of one upstream call.
	ObserveUpstream(model string, duration time.Duration)
}
