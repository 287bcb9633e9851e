package ccgchart

import (
	"github.com/hupe1980/ccgchart/cost"
	"github.com/hupe1980/ccgchart/dict"
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	cost             cost.Cost
	syntax           *dict.Dictionary[string]
}

// Option configures a Chart.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// WithCost configures the cost consulted on every AddEntry.
//
// The entry's probability is multiplied by exp(cost); a cost of -Inf rejects
// the entry. Wrap boolean filters with cost.FromFilter. If the cost
// implements cost.TerminalHook, ApplyTerminalHook runs it.
//
// Example:
//
//	gold, _ := cost.NewSyntacticAgreement(n, parse.Brackets())
//	c, _ := ccgchart.New(sentence, ccgchart.Beam(100), ccgchart.WithCost(gold))
func WithCost(c cost.Cost) Option {
	return func(o *options) {
		o.cost = c
	}
}

// WithSyntaxDictionary sets the category dictionary handed to costs when
// AddEntry is called without one. The chart borrows d; it never modifies it.
func WithSyntaxDictionary(d *dict.Dictionary[string]) Option {
	return func(o *options) {
		o.syntax = d
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &ccgchart.BasicMetricsCollector{}
//	c, _ := ccgchart.New(sentence, ccgchart.Append(), ccgchart.WithMetricsCollector(metrics))
//	// ... fill chart ...
//	stats := metrics.GetStats()
//	fmt.Printf("evicted: %d\n", stats.Inserts[ccgchart.Evicted])
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := ccgchart.NewJSONLogger(slog.LevelDebug)
//	c, _ := ccgchart.New(sentence, ccgchart.ExactScan(), ccgchart.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}
