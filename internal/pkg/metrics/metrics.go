package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courts_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "courts_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courts_reservations_total",
			Help: "Reservation lifecycle events by resulting status",
		},
		[]string{"status"},
	)

	ReservationRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courts_reservation_validation_failures_total",
			Help: "Reservation requests refused by the validator, by reason",
		},
		[]string{"reason"},
	)

	AvailabilityQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courts_availability_queries_total",
			Help: "Number of availability grids computed",
		},
	)

	ReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courts_reports_total",
			Help: "Court reports filed, by type and severity",
		},
		[]string{"type", "severity"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(status string) {
	ReservationsTotal.WithLabelValues(status).Inc()
}

func RecordValidationFailure(reason string) {
	ReservationRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordAvailabilityQuery() {
	AvailabilityQueriesTotal.Inc()
}

func RecordReport(reportType, severity string) {
	ReportsTotal.WithLabelValues(reportType, severity).Inc()
}

// Middleware records request count and latency, labelled by route template
// so path parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
