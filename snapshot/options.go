package snapshot

import (
	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/codec"
)

type options struct {
	compression Compression
	codec       codec.Codec
	policy      ccgchart.Policy
	chartOpts   []ccgchart.Option
	logger      *ccgchart.Logger
}

// Option configures writing or reading a snapshot.
type Option func(*options)

func defaultOptions() options {
	return options{
		compression: CompressionLZ4,
		codec:       codec.Default,
		logger:      ccgchart.NoopLogger(),
	}
}

// WithCompression selects the body compression for writing. Reading takes
// the compression from the snapshot.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithCodec selects the header codec for writing. Reading takes the codec
// from the snapshot.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithPolicy restores into policy instead of the one named in the snapshot.
// Required for charts written with a custom policy.
func WithPolicy(p ccgchart.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithChartOptions passes options to the restored chart.
func WithChartOptions(opts ...ccgchart.Option) Option {
	return func(o *options) {
		o.chartOpts = append(o.chartOpts, opts...)
	}
}

// WithLogger logs Save and Load.
func WithLogger(l *ccgchart.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = ccgchart.NoopLogger()
		}
		o.logger = l
	}
}
