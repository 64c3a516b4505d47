package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	metrics := NewMetrics()
	metrics.ObserveDecision("supervisor_approval", "approved")

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	metrics.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "accessflow_approval_decisions_total") {
		t.Fatalf("expected body to contain accessflow_approval_decisions_total, got: %s", body)
	}
}

func TestMiddlewareRecordsRequestMetrics(t *testing.T) {
	metrics := NewMetrics()

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Get("/requests/{requestID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/requests/abc", nil)
	r.ServeHTTP(rr, req)

	mr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(mr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(mr.Body.String(), "accessflow_http_requests_total") {
		t.Fatal("expected request counter to be exported")
	}
}

func TestRoutePatternFallsBackToUnknown(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routePattern(req.WithContext(context.Background())); got != "unknown" {
		t.Fatalf("expected unknown, got %s", got)
	}
}
