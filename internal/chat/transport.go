package chat

import "context"

// Transport sends one prompt and returns the raw generateContent response body.
// Failures are ErrUnreachable, domain.ErrMissingCredential or *domain.UpstreamError.
type Transport interface {
	Send(ctx context.Context, prompt string) ([]byte, error)
	Name() string
}
