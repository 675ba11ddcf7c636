// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the bookden service.
package observability

import "github.com/prometheus/client_golang/prometheus"

// APIBuckets defines histogram buckets suited for database-backed API
// latencies, ranging from 5ms to 10s.
var APIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

var (
	// RequestsTotal counts all HTTP requests by method, route, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookden_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds by method and route.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookden_request_duration_seconds",
			Help:    "Request duration",
			Buckets: APIBuckets,
		},
		[]string{"method", "route"},
	)

	// RegistrationsTotal counts successful account registrations.
	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookden_registrations_total",
			Help: "Successful registrations",
		},
	)

	// LoginFailuresTotal counts rejected login attempts. Unknown email
	// and wrong password are counted together, matching the API surface.
	LoginFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookden_login_failures_total",
			Help: "Rejected login attempts",
		},
	)

	// ImageUploadsTotal counts cover images stored in object storage.
	ImageUploadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bookden_image_uploads_total",
			Help: "Cover image uploads",
		},
	)

	// KeepAlivePingsTotal counts keep-alive pings by outcome.
	KeepAlivePingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookden_keepalive_pings_total",
			Help: "Keep-alive pings",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		RegistrationsTotal,
		LoginFailuresTotal,
		ImageUploadsTotal,
		KeepAlivePingsTotal,
	)
}

// RecordRegistration increments the successful-registration counter.
func RecordRegistration() {
	RegistrationsTotal.Inc()
}

// RecordLoginFailure increments the rejected-login counter.
func RecordLoginFailure() {
	LoginFailuresTotal.Inc()
}

// RecordImageUpload increments the stored-image counter.
func RecordImageUpload() {
	ImageUploadsTotal.Inc()
}

// RecordKeepAlivePing increments the ping counter with an outcome label,
// "ok" or "error".
func RecordKeepAlivePing(status string) {
	KeepAlivePingsTotal.WithLabelValues(status).Inc()
}
