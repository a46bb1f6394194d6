package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate per route and status.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per route.
	HTTPRequestDuration *prometheus.HistogramVec

	// Weather provider call rate. Watch for: error vs success ratio.
	WeatherAPICallsTotal *prometheus.CounterVec

	// Weather cache lookups by result (hit/miss). Hit rate = hit/(hit+miss).
	WeatherCacheTotal *prometheus.CounterVec

	// Flight events published to kafka, by type.
	FlightEventsPublishedTotal *prometheus.CounterVec
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_api_calls_total",
			Help: "Calls to the weather provider by outcome",
		},
		[]string{"status"},
	)
	WeatherCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_cache_total",
			Help: "Weather cache lookups by result",
		},
		[]string{"result"},
	)
	FlightEventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_events_published_total",
			Help: "Flight events published to kafka by type",
		},
		[]string{"type"},
	)

	registry.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		WeatherAPICallsTotal,
		WeatherCacheTotal,
		FlightEventsPublishedTotal,
	)
}

// MetricsHandler serves the custom registry.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
