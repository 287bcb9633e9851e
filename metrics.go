package ccgchart

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting chart metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see package metrics/prometheus).
//
// Collectors shared between charts filled concurrently must be safe for
// concurrent use.
type MetricsCollector interface {
	// RecordInsert is called after every AddEntry, including rejections.
	RecordInsert(outcome Outcome)

	// RecordFinalize is called after each span finalization.
	// entries is the number of entries the span holds afterwards.
	RecordFinalize(entries int, duration time.Duration)

	// RecordDecode is called after each decode operation.
	// k is the number of parses requested, found the number returned.
	RecordDecode(k, found int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(Outcome)                        {}
func (NoopMetricsCollector) RecordFinalize(int, time.Duration)           {}
func (NoopMetricsCollector) RecordDecode(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Inserts            [numOutcomes]atomic.Int64
	FinalizeCount      atomic.Int64
	FinalizeEntries    atomic.Int64
	FinalizeTotalNanos atomic.Int64
	DecodeCount        atomic.Int64
	DecodeErrors       atomic.Int64
	DecodeParses       atomic.Int64
	DecodeTotalNanos   atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(outcome Outcome) {
	if int(outcome) < len(b.Inserts) {
		b.Inserts[outcome].Add(1)
	}
}

// RecordFinalize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFinalize(entries int, duration time.Duration) {
	b.FinalizeCount.Add(1)
	b.FinalizeEntries.Add(int64(entries))
	b.FinalizeTotalNanos.Add(duration.Nanoseconds())
}

// RecordDecode implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDecode(k, found int, duration time.Duration, err error) {
	b.DecodeCount.Add(1)
	b.DecodeParses.Add(int64(found))
	b.DecodeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.DecodeErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	s := BasicMetricsStats{
		Inserts:         make(map[Outcome]int64, numOutcomes),
		FinalizeCount:   b.FinalizeCount.Load(),
		FinalizeEntries: b.FinalizeEntries.Load(),
		DecodeCount:     b.DecodeCount.Load(),
		DecodeErrors:    b.DecodeErrors.Load(),
		DecodeParses:    b.DecodeParses.Load(),
		DecodeAvgNanos:  avg(b.DecodeTotalNanos.Load(), b.DecodeCount.Load()),
	}
	for i := range b.Inserts {
		s.Inserts[Outcome(i)] = b.Inserts[i].Load()
	}
	return s
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Inserts         map[Outcome]int64
	FinalizeCount   int64
	FinalizeEntries int64
	DecodeCount     int64
	DecodeErrors    int64
	DecodeParses    int64
	DecodeAvgNanos  int64
}
