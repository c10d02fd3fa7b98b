package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/launchpad/internal/domain"
	"github.com/davidbz/launchpad/internal/metrics"
)

func TestNewPrometheusRecorder(t *testing.T) {
	t.Run("should fail without a registry", func(t *testing.T) {
		recorder, err := metrics.NewPrometheusRecorder(nil)

		require.Error(t, err)
		require.Nil(t, recorder)
	})

	t.Run("should refuse double registration", func(t *testing.T) {
		registry := metrics.NewRegistry()

		_, err := metrics.NewPrometheusRecorder(registry)
		require.NoError(t, err)

		_, err = metrics.NewPrometheusRecorder(registry)
		require.Error(t, err)
		require.Contains(t, err.Error(), "register collector")
	})
}

func TestPrometheusRecorder_Observe(t *testing.T) {
	registry := metrics.NewRegistry()
	recorder, err := metrics.NewPrometheusRecorder(registry)
	require.NoError(t, err)

	recorder.ObserveOutcome(domain.OutcomeSuccess)
	recorder.ObserveOutcome(domain.OutcomeSuccess)
	recorder.ObserveOutcome(domain.OutcomeMissingPrompt)
	recorder.ObserveUpstream("gemini-pro", 150*time.Millisecond)

	count, err := testutil.GatherAndCount(registry, "relay_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = testutil.GatherAndCount(registry, "relay_upstream_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)

	server := httptest.NewServer(metrics.Handler(registry))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), `relay_requests_total{outcome="success"} 2`)
	require.Contains(t, string(body), `relay_requests_total{outcome="missing_prompt"} 1`)
	require.Contains(t, string(body), `relay_upstream_duration_seconds_count{model="gemini-pro"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var recorder domain.MetricsRecorder = metrics.NoopRecorder{}

	require.NotPanics(t, func() {
		recorder.ObserveOutcome(domain.OutcomeInternalError)
		recorder.ObserveUpstream("gemini-pro", time.Second)
	})
}
