//go:build !integration

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/records"
	"github.com/sells-group/screening-cli/internal/store"
)

func testRouter(t *testing.T) (http.Handler, *records.Store, store.Store) {
	t.Helper()

	dir := t.TempDir()
	recs := records.NewStore(config.DataConfig{BaseDir: dir})

	ledger, err := store.NewSQLite(filepath.Join(dir, "screening.db"))
	require.NoError(t, err)
	require.NoError(t, ledger.Migrate(t.Context()))
	t.Cleanup(func() { ledger.Close() })

	return newRouter(recs, ledger), recs, ledger
}

func TestRouterHealth(t *testing.T) {
	router, _, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouterJobs(t *testing.T) {
	router, recs, _ := testRouter(t)

	require.NoError(t, recs.SaveJobContext(model.JobContext{
		Name:        "backend_eng",
		Description: "Backend engineer role",
	}))

	req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, []string{"backend_eng"}, body["jobs"])
}

func TestRouterRankings(t *testing.T) {
	router, recs, _ := testRouter(t)

	for name, score := range map[string]int{"jane_doe": 90, "john_smith": 70} {
		require.NoError(t, recs.SaveEvaluation("backend_eng", name, model.Evaluation{
			ID:             model.NewEvaluationID(),
			CandidateName:  name,
			JobName:        "backend_eng",
			OverallScore:   score,
			Recommendation: model.Yes,
			Timestamp:      time.Now().UTC(),
		}))
	}

	req := httptest.NewRequest(http.MethodGet, "/jobs/backend_eng/rankings", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Job      string `json:"job"`
		Rankings []struct {
			Rank          int    `json:"rank"`
			CandidateName string `json:"candidate_name"`
			OverallScore  int    `json:"overall_score"`
		} `json:"rankings"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "backend_eng", body.Job)
	require.Len(t, body.Rankings, 2)
	assert.Equal(t, "jane_doe", body.Rankings[0].CandidateName)
	assert.Equal(t, 1, body.Rankings[0].Rank)
	assert.Equal(t, "john_smith", body.Rankings[1].CandidateName)
}

func TestRouterRuns(t *testing.T) {
	router, _, ledger := testRouter(t)

	run, err := ledger.CreateRun(t.Context(), "backend_eng", model.TriggerProcess)
	require.NoError(t, err)
	require.NoError(t, ledger.CompleteRun(t.Context(), run.ID, model.RunStats{Evaluated: 2}))

	req := httptest.NewRequest(http.MethodGet, "/runs?job=backend_eng", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Runs []model.ReviewRun `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Runs, 1)
	assert.Equal(t, run.ID, body.Runs[0].ID)
	assert.Equal(t, model.RunStatusComplete, body.Runs[0].Status)
	assert.Equal(t, 2, body.Runs[0].Evaluated)
}
