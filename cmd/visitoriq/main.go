package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trafficlens/visitoriq/internal/adconfig"
	"github.com/trafficlens/visitoriq/internal/analysis"
	httpx "github.com/trafficlens/visitoriq/internal/http"
	"github.com/trafficlens/visitoriq/internal/ipinfo"
	"github.com/trafficlens/visitoriq/internal/metrics"
	"github.com/trafficlens/visitoriq/internal/sink"
	"github.com/trafficlens/visitoriq/pkg/config"
)

func buildSinks(names []string) []sink.Sink {
	var sinks []sink.Sink
	for _, name := range names {
		switch name {
		case "log":
			sinks = append(sinks, sink.NewLogSink())
		case "kafka":
			sinks = append(sinks, sink.NewKafkaSinkFromEnv())
		case "postgres":
			sinks = append(sinks, sink.NewPGSinkFromEnv())
		default:
			log.Printf("unknown sink %q, skipping", name)
		}
	}
	return sinks
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics()
	metricsServer := metrics.NewServer(metrics.LoadConfig())
	if err := metricsServer.Start(ctx); err != nil {
		log.Fatalf("metrics server: %v", err)
	}

	sinks := buildSinks(cfg.Outputs)
	for _, s := range sinks {
		if err := s.Start(ctx); err != nil {
			log.Fatalf("sink %s: %v", s.Name(), err)
		}
		log.Printf("sink %s started", s.Name())
	}

	var resolver *ipinfo.Resolver
	if cfg.ASNDBPath != "" {
		r, err := ipinfo.Open(cfg.ASNDBPath)
		if err != nil {
			log.Fatalf("asn database: %v", err)
		}
		defer r.Close()
		resolver = r
		log.Printf("ip reputation enabled (%s)", cfg.ASNDBPath)
	}

	env := httpx.Env{
		Cfg:      cfg,
		Metrics:  m,
		Resolver: resolver,
		Ads:      adconfig.Load(),
		Emit: func(rep analysis.Report) {
			for _, s := range sinks {
				if err := s.Enqueue(rep); err != nil {
					log.Printf("sink %s: enqueue: %v", s.Name(), err)
					m.IncrementSinkErrors(s.Name(), "enqueue")
				}
			}
		},
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: httpx.NewMux(env),
	}

	go func() {
		log.Printf("visitoriq listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)
	for _, s := range sinks {
		if err := s.Close(); err != nil {
			log.Printf("sink %s: close: %v", s.Name(), err)
		}
	}
}
