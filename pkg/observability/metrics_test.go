package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry without panicking.
func TestMetricsRegistered(t *testing.T) {
	expected := map[string]bool{
		"bookden_requests_total":           false,
		"bookden_request_duration_seconds": false,
		"bookden_registrations_total":      false,
		"bookden_login_failures_total":     false,
		"bookden_image_uploads_total":      false,
		"bookden_keepalive_pings_total":    false,
	}

	// Counters and histograms only appear in Gather output after the
	// first observation, so seed everything first.
	RequestsTotal.WithLabelValues("GET", "GET /books", "2xx").Inc()
	RequestDuration.WithLabelValues("GET", "GET /books").Observe(0.1)
	RecordRegistration()
	RecordLoginFailure()
	RecordImageUpload()
	RecordKeepAlivePing("ok")

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}

	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}

	for name, found := range expected {
		if !found {
			t.Errorf("metric %q not found in default registry", name)
		}
	}
}

// TestMiddlewareRecordsRequestCount verifies that the middleware increments
// the request counter for each served request, labeled with the matched
// route pattern.
func TestMiddlewareRecordsRequestCount(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /books", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := MetricsMiddleware(mux)

	before := counterValue(t, RequestsTotal, "GET", "GET /books", "2xx")

	req := httptest.NewRequest("GET", "/books", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := counterValue(t, RequestsTotal, "GET", "GET /books", "2xx")
	if after-before != 1 {
		t.Errorf("expected request count to increase by 1, got delta=%f", after-before)
	}
}

// TestMiddlewareRecordsDuration verifies that the middleware records a
// request duration observation.
func TestMiddlewareRecordsDuration(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /books", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	handler := MetricsMiddleware(mux)

	before := histogramCount(t, RequestDuration, "POST", "POST /books")

	req := httptest.NewRequest("POST", "/books", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := histogramCount(t, RequestDuration, "POST", "POST /books")
	if after-before != 1 {
		t.Errorf("expected histogram sample count to increase by 1, got delta=%d", after-before)
	}
}

// TestMiddlewareCapturesStatusCode verifies that non-200 status codes are
// captured correctly in the status label.
func TestMiddlewareCapturesStatusCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /books/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := MetricsMiddleware(mux)

	before := counterValue(t, RequestsTotal, "DELETE", "DELETE /books/{id}", "4xx")

	req := httptest.NewRequest("DELETE", "/books/book_aaaaaaaaaaaaaaaaaaaaaaaa", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := counterValue(t, RequestsTotal, "DELETE", "DELETE /books/{id}", "4xx")
	if after-before != 1 {
		t.Errorf("expected 4xx count to increase by 1, got delta=%f", after-before)
	}
}

// TestMiddlewareUnmatchedRoute verifies that requests that miss every
// route pattern are bucketed under a single "unmatched" label.
func TestMiddlewareUnmatchedRoute(t *testing.T) {
	handler := MetricsMiddleware(http.NewServeMux())

	before := counterValue(t, RequestsTotal, "GET", "unmatched", "4xx")

	req := httptest.NewRequest("GET", "/no/such/route", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	after := counterValue(t, RequestsTotal, "GET", "unmatched", "4xx")
	if after-before != 1 {
		t.Errorf("expected unmatched count to increase by 1, got delta=%f", after-before)
	}
}

// counterValue reads the current value of a CounterVec for the given labels.
func counterValue(t *testing.T, cv *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting counter metric: %v", err)
	}
	if err := c.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing counter metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

// histogramCount reads the observation count from a HistogramVec.
func histogramCount(t *testing.T, hv *prometheus.HistogramVec, labels ...string) uint64 {
	t.Helper()
	m := &dto.Metric{}
	obs, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("getting histogram metric: %v", err)
	}
	if err := obs.(prometheus.Metric).Write(m); err != nil {
		t.Fatalf("writing histogram metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}
