package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordUpstream("latest", "ok", 0.1)
	r.RecordUpstream("latest", "ok", 0.2)
	r.RecordUpstream("timeseries", "429", 0.3)
	r.RecordTotal("gear", 1_234_567)
	r.RecordError("timeseries")
	r.RecordMerge(100, 0.001)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.upstreamTotal.WithLabelValues("latest", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.upstreamTotal.WithLabelValues("timeseries", "429")))
	assert.Equal(t, float64(1_234_567), testutil.ToFloat64(r.lastTotal.WithLabelValues("gear")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.errorsTotal.WithLabelValues("timeseries")))
}
