// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// Search metrics
	SearchesTotal   *prometheus.CounterVec
	SearchDuration  prometheus.Histogram
	ResultsReturned prometheus.Histogram
	DroppedResults  prometheus.Counter
	DegradedResults prometheus.Counter

	// Address metrics
	OffCurveAddresses prometheus.Counter

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Stream metrics
	WSClients         prometheus.Gauge
	WSEventsBroadcast *prometheus.CounterVec
	WSDroppedClients  prometheus.Counter

	// Health metrics
	UptimeSeconds prometheus.Counter
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "pool_search"
	}

	return &Metrics{
		// Search metrics
		SearchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Total number of search queries by classified kind",
		}, []string{"kind"}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "End-to-end search resolution latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		ResultsReturned: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "results_returned",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		}),
		DroppedResults: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "dropped_results_total",
			Help:      "Total results dropped because a pool referenced a missing token",
		}),
		DegradedResults: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "degraded_results_total",
			Help:      "Total pool bundles assembled with fallback price and reserves",
		}),

		// Address metrics
		OffCurveAddresses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search",
			Name:      "off_curve_addresses_total",
			Help:      "Total searched addresses that are not on the ed25519 curve",
		}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),

		// Stream metrics
		WSClients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "ws_clients",
			Help:      "Currently connected websocket subscribers",
		}),
		WSEventsBroadcast: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "events_broadcast_total",
			Help:      "Total events broadcast to websocket subscribers by channel",
		}, []string{"channel"}),
		WSDroppedClients: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "dropped_clients_total",
			Help:      "Total websocket clients dropped for slow consumption",
		}),

		// Health metrics
		UptimeSeconds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "health",
			Name:      "uptime_seconds_total",
			Help:      "Total uptime in seconds",
		}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordSearch records one handled search with its latency and result count.
func RecordSearch(kind string, seconds float64, results int) {
	DefaultMetrics.SearchesTotal.WithLabelValues(kind).Inc()
	DefaultMetrics.SearchDuration.Observe(seconds)
	DefaultMetrics.ResultsReturned.Observe(float64(results))
}

// RecordDroppedResult increments the dropped results counter.
func RecordDroppedResult() {
	DefaultMetrics.DroppedResults.Inc()
}

// RecordDegradedResult increments the degraded results counter.
func RecordDegradedResult() {
	DefaultMetrics.DegradedResults.Inc()
}

// RecordOffCurveAddress increments the off-curve address counter.
func RecordOffCurveAddress() {
	DefaultMetrics.OffCurveAddresses.Inc()
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}

// UpdateWSClients sets the connected subscriber gauge.
func UpdateWSClients(n int) {
	DefaultMetrics.WSClients.Set(float64(n))
}

// RecordBroadcast records one event broadcast on a channel.
func RecordBroadcast(channel string) {
	DefaultMetrics.WSEventsBroadcast.WithLabelValues(channel).Inc()
}

// RecordDroppedClient increments the slow-consumer drop counter.
func RecordDroppedClient() {
	DefaultMetrics.WSDroppedClients.Inc()
}
