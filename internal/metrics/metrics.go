package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "payreport"

// Metrics collects per-run figures. A nil *Metrics records nothing.
type Metrics struct {
	registry      *prometheus.Registry
	reportRows    prometheus.Gauge
	queryDuration prometheus.Histogram
	ingestedRows  *prometheus.CounterVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reportRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Number of rows returned by the last payment report run",
		}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_query_duration_seconds",
			Help:      "Duration of the payment report query",
			Buckets:   prometheus.DefBuckets,
		}),
		ingestedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_rows_total",
			Help:      "Rows inserted by dataset ingestion",
		}, []string{"table"}),
	}

	m.registry.MustRegister(m.reportRows, m.queryDuration, m.ingestedRows)

	return m
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveReport records one report run.
func (m *Metrics) ObserveReport(rows int, took time.Duration) {
	if m == nil {
		return
	}
	m.reportRows.Set(float64(rows))
	m.queryDuration.Observe(took.Seconds())
}

// AddIngested records rows inserted into table.
func (m *Metrics) AddIngested(table string, rows int) {
	if m == nil {
		return
	}
	m.ingestedRows.WithLabelValues(table).Add(float64(rows))
}

// Push sends the collected metrics to a Prometheus Pushgateway.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	return push.New(url, job).Gatherer(m.registry).PushContext(ctx)
}
