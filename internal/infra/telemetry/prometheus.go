package telemetry

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"modelbridge/internal/domain"
)

type PrometheusMetrics struct {
	workerStarts    *prometheus.CounterVec
	startDuration   *prometheus.HistogramVec
	connectDuration *prometheus.HistogramVec
	executeDuration *prometheus.HistogramVec
	batchSize       prometheus.Histogram
	runningWorkers  *prometheus.GaugeVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		workerStarts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "modelbridge_worker_starts_total",
				Help: "Total number of worker start attempts",
			},
			[]string{"instance", "success"},
		),
		startDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modelbridge_worker_start_duration_seconds",
				Help:    "Duration of instance startup from allocate through init",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"instance"},
		),
		connectDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modelbridge_connect_duration_seconds",
				Help:    "Duration of worker channel establishment including init retries",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"instance"},
		),
		executeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "modelbridge_execute_duration_seconds",
				Help:    "Duration of batch execute round trips in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"instance", "status"},
		),
		batchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "modelbridge_batch_size",
				Help:    "Number of requests per execute call",
				Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
			},
		),
		runningWorkers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "modelbridge_running_workers",
				Help: "Whether a worker process is currently running per instance",
			},
			[]string{"instance"},
		),
	}
}

func (p *PrometheusMetrics) ObserveWorkerStart(instance string, d time.Duration, err error) {
	p.workerStarts.WithLabelValues(instance, strconv.FormatBool(err == nil)).Inc()
	p.startDuration.WithLabelValues(instance).Observe(d.Seconds())
}

func (p *PrometheusMetrics) ObserveConnect(instance string, d time.Duration, _ error) {
	p.connectDuration.WithLabelValues(instance).Observe(d.Seconds())
}

func (p *PrometheusMetrics) ObserveExecute(instance string, batchSize int, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	p.executeDuration.WithLabelValues(instance, status).Observe(d.Seconds())
	p.batchSize.Observe(float64(batchSize))
}

func (p *PrometheusMetrics) SetWorkerRunning(instance string, running bool) {
	v := 0.0
	if running {
		v = 1.0
	}
	p.runningWorkers.WithLabelValues(instance).Set(v)
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
