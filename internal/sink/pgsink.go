package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"time"

	_ "github.com/lib/pq"

	"github.com/trafficlens/visitoriq/internal/analysis"
)

var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validateTableName rejects anything that could smuggle SQL through the
// (non-parameterizable) table identifier.
func validateTableName(name string) error {
	if !tableNameRE.MatchString(name) {
		return fmt.Errorf("invalid table name %q", name)
	}
	return nil
}

// PGSink writes each report as one JSONB row.
type PGSink struct {
	DSN   string
	Table string

	db *sql.DB
}

// NewPGSinkFromEnv creates a PGSink from environment variables.
func NewPGSinkFromEnv() *PGSink {
	return &PGSink{
		DSN:   os.Getenv("PG_DSN"),
		Table: getEnvOr("PG_TABLE", "assessments"),
	}
}

func NewPGSink(dsn, table string) *PGSink {
	return &PGSink{DSN: dsn, Table: table}
}

func (s *PGSink) Start(ctx context.Context) error {
	if err := validateTableName(s.Table); err != nil {
		return err
	}

	db, err := sql.Open("postgres", s.DSN)
	if err != nil {
		return fmt.Errorf("pg sink: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return fmt.Errorf("pg sink: ping: %w", err)
	}

	createStmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		assessment_id TEXT PRIMARY KEY,
		ts TIMESTAMPTZ NOT NULL,
		risk_level TEXT NOT NULL,
		payload JSONB NOT NULL
	)`, s.Table)
	if _, err := db.ExecContext(ctx, createStmt); err != nil {
		db.Close()
		return fmt.Errorf("pg sink: ensure table: %w", err)
	}

	s.db = db
	return nil
}

func (s *PGSink) Enqueue(r analysis.Report) error {
	if s.db == nil {
		return fmt.Errorf("pg sink not started")
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("pg sink: serialize report: %w", err)
	}

	insert := fmt.Sprintf(
		`INSERT INTO %s (assessment_id, ts, risk_level, payload) VALUES ($1, $2, $3, $4) ON CONFLICT (assessment_id) DO NOTHING`,
		s.Table)
	if _, err := s.db.Exec(insert, r.AssessmentID, r.TS, string(r.RiskLevel), payload); err != nil {
		return fmt.Errorf("pg sink: insert: %w", err)
	}
	return nil
}

func (s *PGSink) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PGSink) Name() string { return "postgres" }
