package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg            *prometheus.Registry
	Lookups        *prometheus.CounterVec
	LookupSec      prometheus.Histogram
	UpstreamCalls  *prometheus.CounterVec
	UpstreamSec    *prometheus.HistogramVec
	StaleDiscarded prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockscan_lookups_total",
		Help: "Stock lookups by terminal outcome.",
	}, []string{"outcome"})
	lookupSec := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "stockscan_lookup_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	upstreamCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stockscan_upstream_requests_total",
		Help: "ERP requests by stage and HTTP status (0 = no response).",
	}, []string{"stage", "status"})
	upstreamSec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stockscan_upstream_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stockscan_scan_stale_discarded_total",
		Help: "Scan results dropped because a newer scan had started.",
	})

	r.MustRegister(lookups, lookupSec, upstreamCalls, upstreamSec, stale)
	return &Registry{
		reg:            r,
		Lookups:        lookups,
		LookupSec:      lookupSec,
		UpstreamCalls:  upstreamCalls,
		UpstreamSec:    upstreamSec,
		StaleDiscarded: stale,
	}
}

func (r *Registry) ObserveLookup(outcome string, elapsed time.Duration) {
	r.Lookups.WithLabelValues(outcome).Inc()
	r.LookupSec.Observe(elapsed.Seconds())
}

func (r *Registry) ObserveUpstream(stage string, status int, elapsed time.Duration) {
	r.UpstreamCalls.WithLabelValues(stage, strconv.Itoa(status)).Inc()
	r.UpstreamSec.WithLabelValues(stage).Observe(elapsed.Seconds())
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
