package metrics

import (
	"time"

	"github.com/davidbz/launchpad/internal/domain"
)

// NoopRecorder discards every observation.
type NoopRecorder struct{}

func (NoopRecorder) ObserveOutcome(domain.Outcome)         {}
func (NoopRecorder) ObserveUpstream(string, time.Duration) {}
