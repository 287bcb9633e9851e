package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/ccgchart"
	"github.com/hupe1980/ccgchart/testutil"
)

// gather returns metric name -> label value (or "") -> counter value or
// sample count.
func gather(t *testing.T, reg *prometheus.Registry) map[string]map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	out := make(map[string]map[string]float64)
	for _, f := range families {
		m := make(map[string]float64)
		for _, metric := range f.GetMetric() {
			var label string
			if lp := metric.GetLabel(); len(lp) > 0 {
				label = lp[0].GetValue()
			}
			switch {
			case metric.GetCounter() != nil:
				m[label] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				m[label] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
		out[f.GetName()] = m
	}
	return out
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc, err := NewCollector(reg, "ccgchart")
	require.NoError(t, err)

	mc.RecordInsert(ccgchart.Appended)
	mc.RecordInsert(ccgchart.Appended)
	mc.RecordInsert(ccgchart.Rejected)
	mc.RecordFinalize(3, time.Millisecond)
	mc.RecordDecode(5, 2, time.Millisecond, nil)
	mc.RecordDecode(5, 0, time.Millisecond, ccgchart.ErrInvalidK)

	got := gather(t, reg)
	assert.Equal(t, 2.0, got["ccgchart_inserts_total"][ccgchart.Appended.String()])
	assert.Equal(t, 1.0, got["ccgchart_inserts_total"][ccgchart.Rejected.String()])
	assert.Equal(t, 1.0, got["ccgchart_finalize_duration_seconds"][""])
	assert.Equal(t, 1.0, got["ccgchart_span_entries"][""])
	assert.Equal(t, 1.0, got["ccgchart_decode_duration_seconds"]["success"])
	assert.Equal(t, 1.0, got["ccgchart_decode_duration_seconds"]["error"])
	assert.Equal(t, 2.0, got["ccgchart_decoded_parses_total"][""])
}

func TestCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg, "x")
	require.NoError(t, err)

	_, err = NewCollector(reg, "x")
	var are prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &are)
}

func TestCollector_WithChart(t *testing.T) {
	reg := prometheus.NewRegistry()
	mc, err := NewCollector(reg, "")
	require.NoError(t, err)

	c, err := ccgchart.New(ccgchart.NewSentence([]string{"dogs"}, []string{"NNS"}, nil, nil),
		ccgchart.ApproxSorted(), ccgchart.WithMetricsCollector(mc))
	require.NoError(t, err)

	_, err = c.AddEntry(testutil.Terminal(t, 1, 0, 0), 0.5, 0, 0, nil)
	require.NoError(t, err)
	_, err = c.AddEntry(testutil.Terminal(t, 2, 0, 0), 0, 0, 0, nil)
	require.NoError(t, err)
	require.NoError(t, c.FinalizeSpan(0, 0))
	_, err = c.DecodeKBest(0, 0, 1)
	require.NoError(t, err)

	got := gather(t, reg)
	assert.Equal(t, 1.0, got["inserts_total"][ccgchart.Appended.String()])
	assert.Equal(t, 1.0, got["inserts_total"][ccgchart.Rejected.String()])
	assert.Equal(t, 1.0, got["span_entries"][""])
	assert.Equal(t, 1.0, got["decoded_parses_total"][""])
}
