package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/trafficlens/visitoriq/internal/metrics"
)

// Registered once; Prometheus default-registry registration is not
// repeatable within a test binary.
var testMetrics = metrics.NewMetrics()

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := cors(next)

	t.Run("sets permissive headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
	})

	t.Run("short-circuits preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}

func TestMetricsMiddleware(t *testing.T) {
	t.Run("handles nil metrics gracefully", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		handler := MetricsMiddleware(nil)(next)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("passes through status codes", func(t *testing.T) {
		for _, code := range []int{
			http.StatusOK,
			http.StatusBadRequest,
			http.StatusInternalServerError,
		} {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
			})
			handler := MetricsMiddleware(testMetrics)(next)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != code {
				t.Errorf("status = %d, want %d", w.Code, code)
			}
		}
	})
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: recorder, statusCode: http.StatusOK}

	rw.WriteHeader(http.StatusTeapot)

	if rw.statusCode != http.StatusTeapot {
		t.Errorf("captured = %d, want %d", rw.statusCode, http.StatusTeapot)
	}
	if recorder.Code != http.StatusTeapot {
		t.Errorf("forwarded = %d, want %d", recorder.Code, http.StatusTeapot)
	}
}
