package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/davidbz/launchpad/internal/observability"
)

// modelPattern guards the model segment of the upstream URL path.
var modelPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// RelayOptions holds the defaults applied to inbound requests.
type RelayOptions struct {
	DefaultModel           string
	DefaultMaxOutputTokens int
}

// RelayService forwards prompts to the upstream on behalf of clients
// that must never see the upstream credential.
type RelayService struct {
	upstream Upstream
	recorder MetricsRecorder
	options  RelayOptions
}

// NewRelayService creates a new relay service (DI constructor).
func NewRelayService(upstream Upstream, recorder MetricsRecorder, options RelayOptions) *RelayService {
	if options.DefaultModel == "" {
		options.DefaultModel = DefaultModel
	}
	if options.DefaultMaxOutputTokens <= 0 {
		options.DefaultMaxOutputTokens = DefaultMaxOutputTokens
	}

	return &RelayService{
		upstream: upstream,
		recorder: recorder,
		options:  options,
	}
}

// BuildPrompt validates an inbound request and applies defaults.
func (s *RelayService) BuildPrompt(req *RelayRequest) (*PromptRequest, error) {
	if req == nil || req.Prompt == "" {
		return nil, ErrMissingPrompt
	}

	model := req.Model
	if model == "" {
		model = s.options.DefaultModel
	}
	if !modelPattern.MatchString(model) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidModel, model)
	}

	maxOutputTokens := req.MaxOutputTokens
	if maxOutputTokens <= 0 {
		maxOutputTokens = s.options.DefaultMaxOutputTokens
	}

	return &PromptRequest{
		Text:            req.Prompt,
		Model:           model,
		MaxOutputTokens: maxOutputTokens,
		Temperature:     RelayTemperature,
	}, nil
}

// Relay validates the request and performs exactly one upstream call.
// Errors are ErrMissingPrompt, ErrInvalidModel, *UpstreamError or *InternalError.
func (s *RelayService) Relay(ctx context.Context, req *RelayRequest) (*RelayResponse, error) {
	prompt, err := s.BuildPrompt(req)
	if err != nil {
		if errors.Is(err, ErrMissingPrompt) {
			s.observeOutcome(OutcomeMissingPrompt)
		} else {
			s.observeOutcome(OutcomeInvalidRequest)
		}
		return nil, err
	}

	ctx = observability.WithUpstream(ctx, s.upstream.Name())
	ctx = observability.WithModel(ctx, prompt.Model)
	logger := observability.FromContext(ctx)

	start := time.Now()
	body, err := s.upstream.GenerateContent(ctx, prompt.Model, NewGenerateContentRequest(prompt))
	elapsed := time.Since(start)
	if s.recorder != nil {
		s.recorder.ObserveUpstream(prompt.Model, elapsed)
	}

	if err != nil {
		var upstreamErr *UpstreamError
		if errors.As(err, &upstreamErr) {
			logger.Error("upstream rejected request",
				observability.Int("status", upstreamErr.Status),
				observability.String("details", upstreamErr.Body),
				observability.Duration("elapsed", elapsed))
			s.observeOutcome(OutcomeUpstreamError)
			return nil, upstreamErr
		}

		logger.Error("upstream call failed",
			observability.Error(err),
			observability.Duration("elapsed", elapsed))
		s.observeOutcome(OutcomeInternalError)
		return nil, &InternalError{Cause: err}
	}

	if !json.Valid(body) {
		logger.Error("upstream returned malformed JSON",
			observability.Int("body_size", len(body)))
		s.observeOutcome(OutcomeInternalError)
		return nil, &InternalError{Cause: errors.New("upstream returned malformed JSON")}
	}

	logger.Info("upstream call succeeded",
		observability.Int("body_size", len(body)),
		observability.Duration("elapsed", elapsed))
	s.observeOutcome(OutcomeSuccess)

	return &RelayResponse{Body: body}, nil
}

func (s *RelayService) observeOutcome(outcome Outcome) {
	if s.recorder != nil {
		s.recorder.ObserveOutcome(outcome)
	}
}
