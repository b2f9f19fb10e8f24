package sink

import (
	"context"

	"github.com/trafficlens/visitoriq/internal/analysis"
)

// Sink receives completed assessment reports. Sinks are an export surface
// for downstream consumers; the pipeline never reads anything back from
// them.
type Sink interface {
	Start(ctx context.Context) error
	Enqueue(r analysis.Report) error
	Close() error
	Name() string // sink name for metrics and logging
}
