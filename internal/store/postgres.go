package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the ledger uses. pgxmock satisfies it in
// tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS review_runs (
	id          TEXT PRIMARY KEY,
	job_name    TEXT NOT NULL,
	trigger_by  TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	evaluated   INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	started_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	finished_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_review_runs_job ON review_runs(job_name);
CREATE INDEX IF NOT EXISTS idx_review_runs_status ON review_runs(status);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, jobName string, trigger model.RunTrigger) (*model.ReviewRun, error) {
	run := &model.ReviewRun{
		ID:        uuid.New().String(),
		JobName:   jobName,
		Trigger:   trigger,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO review_runs (id, job_name, trigger_by, status, started_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.JobName, string(run.Trigger), string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) CompleteRun(ctx context.Context, runID string, stats model.RunStats) error {
	return s.finishRun(ctx, runID, model.RunStatusComplete, stats)
}

func (s *PostgresStore) FailRun(ctx context.Context, runID string, stats model.RunStats) error {
	return s.finishRun(ctx, runID, model.RunStatusFailed, stats)
}

func (s *PostgresStore) finishRun(ctx context.Context, runID string, status model.RunStatus, stats model.RunStats) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE review_runs SET status = $1, evaluated = $2, skipped = $3, failed = $4, finished_at = $5 WHERE id = $6`,
		string(status), stats.Evaluated, stats.Skipped, stats.Failed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.ReviewRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, job_name, trigger_by, status, evaluated, skipped, failed, started_at, finished_at
		 FROM review_runs WHERE id = $1`, runID)

	run, err := scanRun(row.Scan)
	if err == pgx.ErrNoRows {
		return nil, eris.Errorf("postgres: run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ReviewRun, error) {
	query := `SELECT id, job_name, trigger_by, status, evaluated, skipped, failed, started_at, finished_at
		 FROM review_runs WHERE ($1 = '' OR job_name = $1) AND ($2 = '' OR status = $2)
		 ORDER BY started_at DESC LIMIT $3 OFFSET $4`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx, query, filter.JobName, string(filter.Status), limit, filter.Offset)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.ReviewRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}
