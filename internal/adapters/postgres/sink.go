// Package postgres mirrors harvest runs and accepted records into PostgreSQL.
package postgres

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

const schemaSQL = `CREATE TABLE IF NOT EXISTS harvest_runs (
    id UUID PRIMARY KEY,
    config JSONB NOT NULL,
    status TEXT NOT NULL,
    processed_tasks INT NOT NULL DEFAULT 0,
    total_tasks INT NOT NULL DEFAULT 0,
    total_records INT NOT NULL DEFAULT 0,
    started_at TIMESTAMP WITH TIME ZONE NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    completed_at TIMESTAMP WITH TIME ZONE
);

CREATE TABLE IF NOT EXISTS harvest_records (
    id SERIAL PRIMARY KEY,
    run_id UUID REFERENCES harvest_runs(id),
    company_name TEXT NOT NULL,
    phone TEXT NOT NULL,
    address TEXT NOT NULL,
    years_in_business INT NOT NULL,
    owner TEXT NOT NULL,
    website TEXT NOT NULL,
    search_term TEXT NOT NULL,
    city TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    UNIQUE (run_id, company_name, phone)
);`

const (
	statusRunning  = "running"
	statusComplete = "complete"
)

// execer is the part of pgxpool.Pool the sink needs.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Sink implements ports.ResultSink.
type Sink struct {
	db   execer
	pool *pgxpool.Pool
}

var _ ports.ResultSink = (*Sink)(nil)

// New connects to connString and makes sure the tables exist.
func New(ctx context.Context, connString string) (*Sink, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "failed to connect to database")
	}
	if err := RunSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Sink{db: pool, pool: pool}, nil
}

// RunSchema creates the tables. It is safe to call repeatedly.
func RunSchema(ctx context.Context, db execer) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return eris.Wrap(err, "failed to run schema")
	}
	return nil
}

func parseUUID(s string) (pgtype.UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, eris.Wrapf(err, "invalid run id %q", s)
	}
	return pgtype.UUID{Bytes: u, Valid: true}, nil
}

// StartRun inserts the run with its configuration snapshot.
func (s *Sink) StartRun(ctx context.Context, run domain.Run) error {
	id, err := parseUUID(run.ID)
	if err != nil {
		return err
	}
	config, err := json.Marshal(run)
	if err != nil {
		return eris.Wrap(err, "failed to encode run")
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO harvest_runs (id, config, status, total_tasks, started_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO NOTHING`,
		id, config, statusRunning, len(run.Tasks),
		pgtype.Timestamptz{Time: run.StartedAt, Valid: true},
	)
	return eris.Wrap(err, "failed to insert run")
}

// RecordAccepted stores one accepted record.
func (s *Sink) RecordAccepted(ctx context.Context, runID string, rec domain.BusinessRecord) error {
	id, err := parseUUID(runID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO harvest_records
		 (run_id, company_name, phone, address, years_in_business, owner, website, search_term, city)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (run_id, company_name, phone) DO NOTHING`,
		id, rec.Name, rec.Phone, rec.Address, int32(rec.YearsInBusiness),
		rec.Owner, rec.Website, rec.SearchTerm, rec.Location,
	)
	return eris.Wrap(err, "failed to insert record")
}

// UpdateProgress stores the latest counters of a run.
func (s *Sink) UpdateProgress(ctx context.Context, runID string, p domain.Progress) error {
	return s.updateRun(ctx, runID, statusRunning, p, false)
}

// CompleteRun marks a run finished.
func (s *Sink) CompleteRun(ctx context.Context, runID string, p domain.Progress) error {
	return s.updateRun(ctx, runID, statusComplete, p, true)
}

func (s *Sink) updateRun(ctx context.Context, runID, status string, p domain.Progress, done bool) error {
	id, err := parseUUID(runID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`UPDATE harvest_runs
		 SET status = $2, processed_tasks = $3, total_tasks = $4, total_records = $5,
		     updated_at = NOW(),
		     completed_at = CASE WHEN $6 THEN NOW() ELSE completed_at END
		 WHERE id = $1`,
		id, status, int32(p.ProcessedTasks), int32(p.TotalTasks), int32(p.TotalRecords), done,
	)
	return eris.Wrapf(err, "failed to update run %s", runID)
}

// Close releases the connection pool.
func (s *Sink) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
