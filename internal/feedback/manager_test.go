package feedback

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/records"
)

const testJob = "backend-eng"

type fakeGenerator struct {
	text  string
	calls int
	last  []model.FeedbackRecord
}

func (f *fakeGenerator) GenerateInsights(ctx context.Context, job model.JobContext, recs []model.FeedbackRecord) (string, error) {
	f.calls++
	f.last = recs
	return f.text, nil
}

func setup(t *testing.T) (*Manager, *records.Store, *fakeGenerator) {
	t.Helper()
	recs := records.NewStore(config.DataConfig{BaseDir: t.TempDir()})
	require.NoError(t, recs.SaveJobContext(model.JobContext{Name: testJob, Description: "Build backend services."}))
	gen := &fakeGenerator{text: "- Weigh shipped systems over course work."}
	return NewManager(recs, gen, 2), recs, gen
}

func seedEvaluation(t *testing.T, recs *records.Store, candidate string) {
	t.Helper()
	require.NoError(t, recs.SaveEvaluation(testJob, candidate, model.Evaluation{
		ID:             "eval_" + candidate,
		CandidateName:  candidate,
		JobName:        testJob,
		OverallScore:   75,
		Recommendation: model.Yes,
	}))
}

func TestCollectRequiresEvaluation(t *testing.T) {
	m, _, _ := setup(t)

	_, err := m.Collect(context.Background(), testJob, "ghost", model.HumanFeedback{HumanRecommendation: model.No})
	assert.Error(t, err)
}

func TestCollectFirstFeedbackNoInsights(t *testing.T) {
	m, recs, gen := setup(t)
	seedEvaluation(t, recs, "jane_doe")

	insights, err := m.Collect(context.Background(), testJob, "jane_doe", model.HumanFeedback{HumanRecommendation: model.No})
	require.NoError(t, err)
	assert.Nil(t, insights)
	assert.Zero(t, gen.calls)

	summary, err := recs.LoadFeedbackSummary(testJob)
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.TotalCount)
}

func TestCollectSecondFeedbackRegenerates(t *testing.T) {
	m, recs, gen := setup(t)
	seedEvaluation(t, recs, "jane_doe")
	seedEvaluation(t, recs, "bob_smith")

	_, err := m.Collect(context.Background(), testJob, "jane_doe", model.HumanFeedback{HumanRecommendation: model.Yes})
	require.NoError(t, err)

	insights, err := m.Collect(context.Background(), testJob, "bob_smith", model.HumanFeedback{HumanRecommendation: model.No})
	require.NoError(t, err)
	require.NotNil(t, insights)
	assert.Equal(t, 1, gen.calls)
	assert.Len(t, gen.last, 2)
	assert.Equal(t, 2, insights.FeedbackCount)
	assert.Equal(t, gen.text, insights.Insights)

	// Agreement: jane agreed (YES==YES), bob disagreed.
	assert.InDelta(t, 0.5, insights.Metrics["agreement_rate"], 0.001)

	stored, err := recs.LoadInsights(testJob)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, insights.Insights, stored.Insights)
}

func TestCollectCadenceSkipsOddCounts(t *testing.T) {
	m, recs, gen := setup(t)
	for _, name := range []string{"a", "b", "c"} {
		seedEvaluation(t, recs, name)
	}

	for i, name := range []string{"a", "b", "c"} {
		insights, err := m.Collect(context.Background(), testJob, name, model.HumanFeedback{HumanRecommendation: model.No})
		require.NoError(t, err)
		if i == 1 {
			assert.NotNil(t, insights)
		} else {
			assert.Nil(t, insights, "feedback %d", i+1)
		}
	}
	assert.Equal(t, 1, gen.calls)
}

func TestCollectScoreDeltaMetric(t *testing.T) {
	m, recs, _ := setup(t)
	seedEvaluation(t, recs, "jane_doe") // AI score 75
	seedEvaluation(t, recs, "bob_smith")

	score := 55
	_, err := m.Collect(context.Background(), testJob, "jane_doe", model.HumanFeedback{
		HumanRecommendation: model.Maybe, HumanScore: &score,
	})
	require.NoError(t, err)

	insights, err := m.Collect(context.Background(), testJob, "bob_smith", model.HumanFeedback{HumanRecommendation: model.Yes})
	require.NoError(t, err)
	require.NotNil(t, insights)
	assert.InDelta(t, 20.0, insights.Metrics["avg_score_delta"], 0.001)
}

func TestRegenerateWithoutFeedback(t *testing.T) {
	m, _, _ := setup(t)
	_, err := m.Regenerate(context.Background(), testJob)
	assert.Error(t, err)
}
