package metrics

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all the Prometheus metrics for the analyzer.
type Metrics struct {
	// Counters
	Assessments      *prometheus.CounterVec
	AnalysisFailures prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	SinkErrors       *prometheus.CounterVec

	// Histograms
	AnalyzeDuration prometheus.Histogram
	HTTPDuration    *prometheus.HistogramVec
}

// Config holds configuration for the metrics server.
type Config struct {
	Enabled    bool
	Addr       string
	TLSCert    string
	TLSKey     string
	RequireTLS bool
}

// LoadConfig loads metrics configuration from environment variables.
func LoadConfig() Config {
	return Config{
		Enabled:    getBool("METRICS_ENABLED", false),
		Addr:       getOr("METRICS_ADDR", "127.0.0.1:9090"),
		TLSCert:    getOr("METRICS_TLS_CERT", ""),
		TLSKey:     getOr("METRICS_TLS_KEY", ""),
		RequireTLS: getBool("METRICS_REQUIRE_TLS", false),
	}
}

// NewMetrics creates and registers all analyzer metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Assessments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visitoriq_assessments_total",
				Help: "Completed assessments by risk level",
			},
			[]string{"risk_level"},
		),

		AnalysisFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "visitoriq_analysis_failures_total",
				Help: "Pipeline invocations that failed and were discarded",
			},
		),

		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visitoriq_http_requests_total",
				Help: "Total HTTP requests by endpoint and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		SinkErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visitoriq_sink_errors_total",
				Help: "Total errors writing a report to a sink",
			},
			[]string{"sink", "error_type"},
		),

		AnalyzeDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "visitoriq_analyze_duration_seconds",
				Help:    "Full pipeline duration per visit",
				Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
			},
		),

		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "visitoriq_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"endpoint", "method"},
		),
	}

	prometheus.MustRegister(m.Assessments)
	prometheus.MustRegister(m.AnalysisFailures)
	prometheus.MustRegister(m.HTTPRequests)
	prometheus.MustRegister(m.SinkErrors)
	prometheus.MustRegister(m.AnalyzeDuration)
	prometheus.MustRegister(m.HTTPDuration)

	return m
}

// Server represents the metrics HTTP server.
type Server struct {
	server *http.Server
	config Config
}

// NewServer creates a new metrics server.
func NewServer(config Config) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:         config.Addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if config.RequireTLS && config.TLSCert != "" && config.TLSKey != "" {
		srv.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &Server{server: srv, config: config}
}

// Start starts the metrics server in a separate goroutine.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.Printf("metrics: disabled (METRICS_ENABLED=false)")
		return nil
	}

	go func() {
		var err error
		if s.config.RequireTLS && s.config.TLSCert != "" && s.config.TLSKey != "" {
			log.Printf("metrics: HTTPS server listening on %s", s.config.Addr)
			err = s.server.ListenAndServeTLS(s.config.TLSCert, s.config.TLSKey)
		} else {
			log.Printf("metrics: HTTP server listening on %s", s.config.Addr)
			err = s.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("metrics: server error: %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}
	log.Printf("metrics: shutting down server...")
	return s.server.Shutdown(ctx)
}

func getOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Convenience methods for common operations.
func (m *Metrics) ObserveAssessment(riskLevel string, duration time.Duration) {
	m.Assessments.WithLabelValues(riskLevel).Inc()
	m.AnalyzeDuration.Observe(duration.Seconds())
}

func (m *Metrics) IncrementSinkErrors(sink, errorType string) {
	m.SinkErrors.WithLabelValues(sink, errorType).Inc()
}

func (m *Metrics) IncrementHTTPRequests(endpoint, method, status string) {
	m.HTTPRequests.WithLabelValues(endpoint, method, status).Inc()
}

func (m *Metrics) ObserveHTTPDuration(endpoint, method string, duration time.Duration) {
	m.HTTPDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}
