// Package metrics provides Prometheus metrics for archimago.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archimago_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archimago_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Command Metrics
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archimago_commands_total",
			Help: "Total number of chat commands handled",
		},
		[]string{"command", "result"}, // result: "ok", "error", "unknown"
	)

	CommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archimago_command_duration_seconds",
			Help:    "Time taken to answer a chat command",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"command"},
	)

	// Curiosa Fetch Metrics
	CuriosaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archimago_curiosa_requests_total",
			Help: "Total number of curiosa.io requests",
		},
		[]string{"kind", "result"}, // kind: "deck", "faq"; result: "success", "failed", "not_found", "rejected"
	)

	CuriosaRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archimago_curiosa_request_duration_seconds",
			Help:    "curiosa.io request latency in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"kind"},
	)

	DeckCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archimago_deck_cache_hits_total",
			Help: "Deck table cache hit count",
		},
	)

	DeckCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archimago_deck_cache_misses_total",
			Help: "Deck table cache miss count",
		},
	)

	DeckLinesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "archimago_deck_lines_dropped_total",
			Help: "Malformed deck table lines dropped while parsing",
		},
	)

	// Catalog Metrics
	CatalogCards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "archimago_catalog_cards",
			Help: "Number of cards in the active catalog snapshot",
		},
	)

	CatalogRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archimago_catalog_refreshes_total",
			Help: "Catalog snapshot rebuilds",
		},
		[]string{"result"}, // "success", "failed"
	)

	// Lookup Metrics
	CardLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archimago_card_lookups_total",
			Help: "Card name lookups by outcome",
		},
		[]string{"outcome"}, // "found", "suggested", "missing"
	)
)
