// Package prometheus exports chart metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc, err := chartprom.NewCollector(reg, "ccgchart")
//	if err != nil { ... }
//	c, _ := ccgchart.New(sentence, ccgchart.Beam(64), ccgchart.WithMetricsCollector(mc))
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/ccgchart"
)

// Collector implements ccgchart.MetricsCollector with Prometheus metrics.
// It is safe for concurrent use.
type Collector struct {
	inserts         *prometheus.CounterVec
	finalizeLatency prometheus.Histogram
	finalizeEntries prometheus.Histogram
	decodeLatency   *prometheus.HistogramVec
	decodeParses    prometheus.Counter
}

var _ ccgchart.MetricsCollector = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
// namespace prefixes every metric name and may be empty.
func NewCollector(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		inserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inserts_total",
			Help:      "Entries proposed to a chart, by outcome.",
		}, []string{"outcome"}),
		finalizeLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "finalize_duration_seconds",
			Help:      "Latency of span finalization.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		finalizeEntries: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "span_entries",
			Help:      "Entries held by a span after finalization.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		decodeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "decode_duration_seconds",
			Help:      "Latency of k-best decoding.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"status"}),
		decodeParses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decoded_parses_total",
			Help:      "Parses returned by decoding.",
		}),
	}

	for _, col := range []prometheus.Collector{
		c.inserts, c.finalizeLatency, c.finalizeEntries, c.decodeLatency, c.decodeParses,
	} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordInsert implements ccgchart.MetricsCollector.
func (c *Collector) RecordInsert(outcome ccgchart.Outcome) {
	c.inserts.WithLabelValues(outcome.String()).Inc()
}

// RecordFinalize implements ccgchart.MetricsCollector.
func (c *Collector) RecordFinalize(entries int, duration time.Duration) {
	c.finalizeLatency.Observe(duration.Seconds())
	c.finalizeEntries.Observe(float64(entries))
}

// RecordDecode implements ccgchart.MetricsCollector.
func (c *Collector) RecordDecode(_, found int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.decodeLatency.WithLabelValues(status).Observe(duration.Seconds())
	c.decodeParses.Add(float64(found))
}
