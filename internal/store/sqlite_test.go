package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screening-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "screening.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestSQLiteRunLifecycle(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "backend-eng", model.TriggerProcess)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusRunning, run.Status)

	stats := model.RunStats{Evaluated: 4, Skipped: 1, Failed: 0}
	require.NoError(t, s.CompleteRun(ctx, run.ID, stats))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusComplete, got.Status)
	assert.Equal(t, 4, got.Evaluated)
	assert.Equal(t, 1, got.Skipped)
	require.NotNil(t, got.FinishedAt)
}

func TestSQLiteFailRun(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, "backend-eng", model.TriggerReEvaluate)
	require.NoError(t, err)
	require.NoError(t, s.FailRun(ctx, run.ID, model.RunStats{Failed: 2}))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RunStatusFailed, got.Status)
	assert.Equal(t, model.TriggerReEvaluate, got.Trigger)
}

func TestSQLiteFinishUnknownRun(t *testing.T) {
	s := newTestSQLite(t)
	err := s.CompleteRun(context.Background(), "nope", model.RunStats{})
	assert.Error(t, err)
}

func TestSQLiteListRunsFiltered(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	a, err := s.CreateRun(ctx, "backend-eng", model.TriggerProcess)
	require.NoError(t, err)
	_, err = s.CreateRun(ctx, "data-eng", model.TriggerProcess)
	require.NoError(t, err)
	require.NoError(t, s.CompleteRun(ctx, a.ID, model.RunStats{Evaluated: 1}))

	runs, err := s.ListRuns(ctx, RunFilter{JobName: "backend-eng"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, a.ID, runs[0].ID)

	complete, err := s.ListRuns(ctx, RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	all, err := s.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
