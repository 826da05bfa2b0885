// Package metrics holds the process prometheus collectors
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assetsearch_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assetsearch_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	SearchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "assetsearch_searches_total",
		Help: "Searches by outcome (empty, advisory, no_matches, results, unavailable)",
	}, []string{"outcome"})

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "assetsearch_search_duration_seconds",
		Help: "Wall time of count plus page queries",
		// searches may run up to the 60s execution allowance
		Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	})

	SearchEventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "assetsearch_search_events_dropped_total",
		Help: "Search events that could not be written to the event log",
	})
)

// ObserveHTTP records one finished request; route is the matched pattern, never the raw path
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// ObserveSearch records one search outcome and, for executed searches, its duration
func ObserveSearch(outcome string, elapsed time.Duration) {
	SearchesTotal.WithLabelValues(outcome).Inc()
	if elapsed > 0 {
		SearchDuration.Observe(elapsed.Seconds())
	}
}

// Handler exposes the default registry
func Handler() http.Handler { return promhttp.Handler() }
