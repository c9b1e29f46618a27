package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestObserveRequestExportsCounterAndHistogram(t *testing.T) {
	m := NewHTTPMetrics()
	m.ObserveRequest(http.MethodGet, "/api/v1/stores", http.StatusOK, 120*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/v1/stores", http.StatusOK, 80*time.Millisecond)
	m.ObserveRequest(http.MethodPut, "/api/v1/stores/{storeId}", http.StatusForbidden, 10*time.Millisecond)

	mfs, err := m.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got := counterValue(t, mfs, "http_requests_total", map[string]string{
		"method": "GET", "route": "/api/v1/stores", "status": "2xx",
	}); got != 2 {
		t.Fatalf("expected 2 GET requests, got %f", got)
	}
	if got := counterValue(t, mfs, "http_requests_total", map[string]string{
		"method": "PUT", "route": "/api/v1/stores/{storeId}", "status": "4xx",
	}); got != 1 {
		t.Fatalf("expected 1 PUT request, got %f", got)
	}
}

func TestHandlerServesScrapeEndpoint(t *testing.T) {
	m := NewHTTPMetrics()
	m.ObserveRequest(http.MethodGet, "/health/live", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("expected scrape output to contain http_requests_total")
	}
}

func TestNilReceiverIsSafe(t *testing.T) {
	var m *HTTPMetrics
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	if m.Handler() == nil {
		t.Fatal("expected fallback handler")
	}
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string) float64 {
	t.Helper()
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
	metric:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue metric
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s with labels %v not found", name, labels)
	return 0
}
