package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitscope_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outfitscope_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	combinationsScored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "outfitscope_combinations_scored_total",
		Help: "Outfit combinations generated and scored.",
	})

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outfitscope_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result (hit or miss).",
		},
		[]string{"result"},
	)
)
