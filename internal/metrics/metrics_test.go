package metrics

import (
	"context"
	"testing"
	"time"
)

// Registered once; duplicate registration on the default registry panics.
var testMetrics = NewMetrics()

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("METRICS_ENABLED", "")
		t.Setenv("METRICS_ADDR", "")

		cfg := LoadConfig()
		if cfg.Enabled {
			t.Error("metrics should be disabled by default")
		}
		if cfg.Addr != "127.0.0.1:9090" {
			t.Errorf("addr = %q", cfg.Addr)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("METRICS_ENABLED", "true")
		t.Setenv("METRICS_ADDR", ":9999")
		t.Setenv("METRICS_REQUIRE_TLS", "true")
		t.Setenv("METRICS_TLS_CERT", "/tmp/cert.pem")

		cfg := LoadConfig()
		if !cfg.Enabled || cfg.Addr != ":9999" || !cfg.RequireTLS || cfg.TLSCert != "/tmp/cert.pem" {
			t.Errorf("config = %+v", cfg)
		}
	})

	t.Run("invalid bool falls back", func(t *testing.T) {
		t.Setenv("METRICS_ENABLED", "not-a-bool")
		if cfg := LoadConfig(); cfg.Enabled {
			t.Error("invalid bool should fall back to default")
		}
	})
}

func TestMetricsRecorders(t *testing.T) {
	// The helpers must not panic for any label combination we use.
	testMetrics.ObserveAssessment("medium", 3*time.Millisecond)
	testMetrics.IncrementSinkErrors("kafka", "enqueue")
	testMetrics.IncrementHTTPRequests("/analyze", "POST", "200")
	testMetrics.ObserveHTTPDuration("/analyze", "POST", 5*time.Millisecond)
	testMetrics.AnalysisFailures.Inc()
}

func TestDisabledServerLifecycle(t *testing.T) {
	srv := NewServer(Config{Enabled: false, Addr: "127.0.0.1:0"})

	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}
