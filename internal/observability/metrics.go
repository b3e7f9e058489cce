package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate. Watch for: sudden drops (service down) or spikes (traffic surge).
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Watch for: p95/p99 latency increases.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation, capacity limits.
	HTTPRequestsInFlight prometheus.Gauge

	// Vehicle registrations by kind. Watch for: fleet growth, kind distribution.
	VehiclesRegisteredTotal *prometheus.CounterVec

	// Engine starts dispatched by kind. Watch for: which variants get exercised.
	EngineStartsTotal *prometheus.CounterVec

	// Fuel efficiency queries by kind.
	FuelEfficiencyQueriesTotal *prometheus.CounterVec

	// Store operations by operation and outcome. Watch for: backend errors.
	StoreOperationsTotal *prometheus.CounterVec

	// Demo showcase runs via GET /demo.
	ShowcaseRunsTotal prometheus.Counter

	// Rate limit denials. Watch for: overload, capacity exceeded.
	RateLimitDeniedTotal prometheus.Counter

	// In-flight requests observed at shutdown.
	shutdownInFlightRequests prometheus.Gauge
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	VehiclesRegisteredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehiclesRegisteredTotal",
			Help: "Total number of vehicles registered, by kind",
		},
		[]string{"kind"},
	)
	EngineStartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engineStartsTotal",
			Help: "Total number of engine starts dispatched, by kind",
		},
		[]string{"kind"},
	)
	FuelEfficiencyQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuelEfficiencyQueriesTotal",
			Help: "Total number of fuel efficiency computations, by kind",
		},
		[]string{"kind"},
	)
	StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storeOperationsTotal",
			Help: "Total number of store operations, by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	ShowcaseRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "showcaseRunsTotal",
			Help: "Total number of demo showcase runs",
		},
	)
	RateLimitDeniedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rateLimitDeniedTotal",
			Help: "Total number of requests denied by rate limiter (429)",
		},
	)
	shutdownInFlightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shutdownInFlightRequests",
			Help: "In-flight requests observed when graceful shutdown started",
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		VehiclesRegisteredTotal, EngineStartsTotal, FuelEfficiencyQueriesTotal,
		StoreOperationsTotal, ShowcaseRunsTotal,
		RateLimitDeniedTotal, shutdownInFlightRequests,
	)
}

// RecordStoreOperation increments the store operation counter.
// operation is get/put/list; outcome is success or error.
func RecordStoreOperation(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	StoreOperationsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordShutdownInFlight records how many requests were in flight when
// graceful shutdown started.
func RecordShutdownInFlight(count int64) {
	shutdownInFlightRequests.Set(float64(count))
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
