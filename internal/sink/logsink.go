package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/trafficlens/visitoriq/internal/analysis"
)

// LogSink writes reports as newline-delimited JSON to a file, or to stdout
// when LOG_PATH=stdout.
type LogSink struct {
	dst string
	f   *os.File
	mu  sync.Mutex
}

func NewLogSink() *LogSink {
	return &LogSink{dst: getEnvOr("LOG_PATH", "ndjson.log")}
}

func (s *LogSink) Start(ctx context.Context) error {
	if s.dst == "stdout" {
		return nil
	}
	f, err := os.OpenFile(s.dst, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("log sink: open %s: %w", s.dst, err)
	}
	s.f = f
	return nil
}

func (s *LogSink) Enqueue(r analysis.Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("log sink: serialize report: %w", err)
	}
	b = append(b, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		_, err = os.Stdout.Write(b)
		return err
	}
	_, err = s.f.Write(b)
	return err
}

func (s *LogSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	return err
}

func (s *LogSink) Name() string { return "log" }
