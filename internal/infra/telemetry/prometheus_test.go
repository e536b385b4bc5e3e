package telemetry

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelbridge/internal/domain"
)

func TestNewPrometheusMetrics(t *testing.T) {
	m := NewPrometheusMetrics(prometheus.NewRegistry())
	assert.NotNil(t, m)
	assert.NotNil(t, m.workerStarts)
	assert.NotNil(t, m.startDuration)
	assert.NotNil(t, m.connectDuration)
	assert.NotNil(t, m.executeDuration)
	assert.NotNil(t, m.batchSize)
	assert.NotNil(t, m.runningWorkers)
}

func TestNewPrometheusMetrics_UsesProvidedRegistry(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := NewPrometheusMetrics(registry)
	m.ObserveWorkerStart("echo_0", 250*time.Millisecond, nil)
	m.ObserveWorkerStart("echo_0", 100*time.Millisecond, assert.AnError)
	m.ObserveConnect("echo_0", 50*time.Millisecond, nil)
	m.ObserveExecute("echo_0", 4, 10*time.Millisecond, nil)
	m.ObserveExecute("echo_0", 1, 20*time.Millisecond, assert.AnError)
	m.SetWorkerRunning("echo_0", true)

	metrics, err := registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(metrics))
	for _, mf := range metrics {
		names = append(names, mf.GetName())
	}

	assert.Contains(t, names, "modelbridge_worker_starts_total")
	assert.Contains(t, names, "modelbridge_worker_start_duration_seconds")
	assert.Contains(t, names, "modelbridge_connect_duration_seconds")
	assert.Contains(t, names, "modelbridge_execute_duration_seconds")
	assert.Contains(t, names, "modelbridge_batch_size")
	assert.Contains(t, names, "modelbridge_running_workers")
}

func TestPrometheusMetrics_ImplementsInterface(t *testing.T) {
	var _ domain.Metrics = (*PrometheusMetrics)(nil)
}

func TestNoopMetrics(t *testing.T) {
	m := NewNoopMetrics()
	assert.NotPanics(t, func() {
		m.ObserveWorkerStart("echo_0", time.Second, nil)
		m.ObserveConnect("echo_0", time.Second, assert.AnError)
		m.ObserveExecute("echo_0", 1, time.Second, nil)
		m.SetWorkerRunning("echo_0", false)
	})
}
