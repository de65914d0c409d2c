package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ObserveLookup(t *testing.T) {
	r := NewRegistry()

	r.ObserveLookup("done", 20*time.Millisecond)
	r.ObserveLookup("done", 30*time.Millisecond)
	r.ObserveLookup("not_found", 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.Lookups.WithLabelValues("done")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.Lookups.WithLabelValues("not_found")))
}

func TestRegistry_ObserveUpstream(t *testing.T) {
	r := NewRegistry()

	r.ObserveUpstream("product", 200, time.Millisecond)
	r.ObserveUpstream("stock", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.UpstreamCalls.WithLabelValues("product", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.UpstreamCalls.WithLabelValues("stock", "0")))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.ObserveLookup("done", time.Millisecond)
	r.StaleDiscarded.Inc()

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `stockscan_lookups_total{outcome="done"} 1`)
	assert.Contains(t, string(body), "stockscan_scan_stale_discarded_total 1")
}
