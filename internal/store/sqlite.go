package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/screening-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS review_runs (
	id          TEXT PRIMARY KEY,
	job_name    TEXT NOT NULL,
	trigger_by  TEXT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'running',
	evaluated   INTEGER NOT NULL DEFAULT 0,
	skipped     INTEGER NOT NULL DEFAULT 0,
	failed      INTEGER NOT NULL DEFAULT 0,
	started_at  DATETIME NOT NULL,
	finished_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_review_runs_job ON review_runs(job_name);
CREATE INDEX IF NOT EXISTS idx_review_runs_status ON review_runs(status);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, jobName string, trigger model.RunTrigger) (*model.ReviewRun, error) {
	run := &model.ReviewRun{
		ID:        uuid.New().String(),
		JobName:   jobName,
		Trigger:   trigger,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO review_runs (id, job_name, trigger_by, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.JobName, string(run.Trigger), string(run.Status), run.StartedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) CompleteRun(ctx context.Context, runID string, stats model.RunStats) error {
	return s.finishRun(ctx, runID, model.RunStatusComplete, stats)
}

func (s *SQLiteStore) FailRun(ctx context.Context, runID string, stats model.RunStats) error {
	return s.finishRun(ctx, runID, model.RunStatusFailed, stats)
}

func (s *SQLiteStore) finishRun(ctx context.Context, runID string, status model.RunStatus, stats model.RunStats) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE review_runs SET status = ?, evaluated = ?, skipped = ?, failed = ?, finished_at = ? WHERE id = ?`,
		string(status), stats.Evaluated, stats.Skipped, stats.Failed, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: run %s not found", runID)
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.ReviewRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, job_name, trigger_by, status, evaluated, skipped, failed, started_at, finished_at
		 FROM review_runs WHERE id = ?`, runID)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("sqlite: run %s not found", runID)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.ReviewRun, error) {
	query := `SELECT id, job_name, trigger_by, status, evaluated, skipped, failed, started_at, finished_at
		 FROM review_runs WHERE 1=1`
	var args []any
	if filter.JobName != "" {
		query += ` AND job_name = ?`
		args = append(args, filter.JobName)
	}
	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY started_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.ReviewRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

// scanRun reads one ledger row via the given Scan function.
func scanRun(scan func(dest ...any) error) (*model.ReviewRun, error) {
	var run model.ReviewRun
	var trigger, status string
	var finished *time.Time
	err := scan(&run.ID, &run.JobName, &trigger, &status,
		&run.Evaluated, &run.Skipped, &run.Failed, &run.StartedAt, &finished)
	if err != nil {
		return nil, err
	}
	run.Trigger = model.RunTrigger(trigger)
	run.Status = model.RunStatus(status)
	run.FinishedAt = finished
	return &run, nil
}
