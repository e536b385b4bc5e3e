package telemetry

import (
	"time"

	"modelbridge/internal/domain"
)

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveWorkerStart(_ string, _ time.Duration, _ error) {}

func (n *NoopMetrics) ObserveConnect(_ string, _ time.Duration, _ error) {}

func (n *NoopMetrics) ObserveExecute(_ string, _ int, _ time.Duration, _ error) {}

func (n *NoopMetrics) SetWorkerRunning(_ string, _ bool) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
