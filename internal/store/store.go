// Package store persists the review-run ledger: one row per batch of
// candidate evaluations, so operators can audit what ran, when, and how it
// went.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	JobName string          `json:"job_name,omitempty"`
	Status  model.RunStatus `json:"status,omitempty"`
	Limit   int             `json:"limit,omitempty"`
	Offset  int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for the run ledger.
type Store interface {
	CreateRun(ctx context.Context, jobName string, trigger model.RunTrigger) (*model.ReviewRun, error)
	CompleteRun(ctx context.Context, runID string, stats model.RunStats) error
	FailRun(ctx context.Context, runID string, stats model.RunStats) error
	GetRun(ctx context.Context, runID string) (*model.ReviewRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.ReviewRun, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.SQLitePath())
	case "postgres":
		return NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}
