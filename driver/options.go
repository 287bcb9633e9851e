package driver

import (
	"runtime"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/dict"
)

type options struct {
	workers      int
	maxChartSize int
	syntax       *dict.Dictionary[string]
	logger       *ccgchart.Logger
}

// Option configures Fill.
type Option func(*options)

func defaultOptions() options {
	return options{
		workers: 1,
		logger:  ccgchart.NoopLogger(),
	}
}

// WithWorkers sets how many spans of one length are filled concurrently.
// n <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithMaxChartSize aborts Fill with ErrChartTooLarge once the chart holds
// more than n entries after a span length. n <= 0 disables the limit.
func WithMaxChartSize(n int) Option {
	return func(o *options) {
		o.maxChartSize = n
	}
}

// WithSyntaxDictionary passes d to every AddEntry.
func WithSyntaxDictionary(d *dict.Dictionary[string]) Option {
	return func(o *options) {
		o.syntax = d
	}
}

// WithLogger logs progress per span length at debug level.
func WithLogger(l *ccgchart.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = ccgchart.NoopLogger()
		}
		o.logger = l
	}
}
