// Package metrics provides Prometheus metrics for the conversion service.
//
// Every Metrics value owns a private registry, so several routers (one per
// test, for example) never collide on registration.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "fxstack"

// Metrics holds the service collectors and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTPRequestsTotal counts HTTP requests by method, path and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration measures HTTP request duration in seconds.
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInFlight tracks requests currently being processed.
	HTTPRequestsInFlight prometheus.Gauge

	// RateLimitRejections counts requests rejected by the per-IP limiter.
	RateLimitRejections prometheus.Counter

	// RatesCacheLookups counts rate lookups by outcome: hit, miss or stale.
	RatesCacheLookups *prometheus.CounterVec

	// RatesUpstreamFetches counts upstream fetches by result: success or error.
	RatesUpstreamFetches *prometheus.CounterVec

	// RatesUpstreamDuration measures upstream fetch latency.
	RatesUpstreamDuration prometheus.Histogram

	// Conversions counts successful conversions.
	Conversions prometheus.Counter
}

// New creates the collectors and registers them, with the Go runtime and
// process collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "path"}),
		HTTPRequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		}),
		RateLimitRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_rate_limited_total",
			Help:      "Requests rejected by the per-client rate limiter",
		}),
		RatesCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_cache_lookups_total",
			Help:      "Exchange rate cache lookups by outcome",
		}, []string{"outcome"}),
		RatesUpstreamFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rates_upstream_fetches_total",
			Help:      "Exchange rate upstream fetches by result",
		}, []string{"result"}),
		RatesUpstreamDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rates_upstream_duration_seconds",
			Help:      "Exchange rate upstream fetch duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5},
		}),
		Conversions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Successful currency conversions",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.RateLimitRejections,
		m.RatesCacheLookups,
		m.RatesUpstreamFetches,
		m.RatesUpstreamDuration,
		m.Conversions,
	)
	return m
}
