// Package feedback collects human verdicts on AI evaluations and distills
// them into per-job insights on a fixed cadence.
package feedback

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/records"
)

// InsightGenerator distills feedback records into guidance text. Satisfied by
// eval.Evaluator.
type InsightGenerator interface {
	GenerateInsights(ctx context.Context, job model.JobContext, recs []model.FeedbackRecord) (string, error)
}

// Manager owns the feedback loop for all jobs.
type Manager struct {
	recs      *records.Store
	generator InsightGenerator

	// cadence triggers insight regeneration whenever the cumulative feedback
	// count is a positive multiple of it. Minimum effective value is 2: a
	// single data point is not a pattern.
	cadence int
}

// NewManager creates a feedback manager.
func NewManager(recs *records.Store, generator InsightGenerator, cadence int) *Manager {
	if cadence < 1 {
		cadence = 2
	}
	return &Manager{recs: recs, generator: generator, cadence: cadence}
}

// Collect records a human verdict on a candidate's current evaluation and,
// when the job's cumulative feedback count hits the cadence, regenerates the
// job's insights. Returns the fresh insights, or nil when regeneration was
// not due.
func (m *Manager) Collect(ctx context.Context, jobName, candidateName string, fb model.HumanFeedback) (*model.JobInsights, error) {
	current, err := m.recs.CurrentEvaluation(jobName, candidateName)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, eris.Errorf("feedback: %s has no evaluation to review", candidateName)
	}

	if fb.ID == "" {
		fb.ID = model.NewFeedbackID()
	}
	fb.EvaluationID = current.ID
	if fb.Timestamp.IsZero() {
		fb.Timestamp = time.Now().UTC()
	}

	rec := model.FeedbackRecord{
		ID:            model.NewRecordID(),
		CandidateName: candidateName,
		JobName:       jobName,
		Evaluation:    *current,
		Feedback:      fb,
	}
	if err := m.recs.SaveFeedback(jobName, candidateName, rec); err != nil {
		return nil, err
	}

	total, err := m.updateSummary(jobName, rec)
	if err != nil {
		return nil, err
	}

	zap.L().Info("feedback recorded",
		zap.String("job", jobName),
		zap.String("candidate", candidateName),
		zap.String("human_recommendation", string(fb.HumanRecommendation)),
		zap.Int("total_feedback", total),
	)

	if total < 2 || total%m.cadence != 0 {
		return nil, nil
	}
	return m.Regenerate(ctx, jobName)
}

// updateSummary appends the verdict to the job's running tally and returns
// the new total.
func (m *Manager) updateSummary(jobName string, rec model.FeedbackRecord) (int, error) {
	summary, err := m.recs.LoadFeedbackSummary(jobName)
	if err != nil {
		return 0, err
	}
	if summary == nil {
		summary = &model.FeedbackSummary{JobName: jobName}
	}
	summary.TotalCount++
	summary.Records = append(summary.Records, model.FeedbackSummaryEntry{
		CandidateName:       rec.CandidateName,
		Timestamp:           rec.Feedback.Timestamp,
		HumanRecommendation: rec.Feedback.HumanRecommendation,
		AIRecommendation:    rec.Evaluation.Recommendation,
	})
	if err := m.recs.SaveFeedbackSummary(*summary); err != nil {
		return 0, err
	}
	return summary.TotalCount, nil
}

// Regenerate rebuilds a job's insights from all stored feedback, replacing
// any previous insights wholesale.
func (m *Manager) Regenerate(ctx context.Context, jobName string) (*model.JobInsights, error) {
	feedbackRecs, err := m.recs.Feedback(jobName)
	if err != nil {
		return nil, err
	}
	if len(feedbackRecs) == 0 {
		return nil, eris.Errorf("feedback: no feedback recorded for %s", jobName)
	}

	job, err := m.recs.LoadJobContext(jobName)
	if err != nil {
		return nil, err
	}

	text, err := m.generator.GenerateInsights(ctx, job, feedbackRecs)
	if err != nil {
		return nil, err
	}

	insights := model.JobInsights{
		ID:            model.NewInsightsID(),
		JobName:       jobName,
		Insights:      text,
		FeedbackCount: len(feedbackRecs),
		Metrics:       metrics(feedbackRecs),
		LastUpdated:   time.Now().UTC(),
	}
	if err := m.recs.SaveInsights(insights); err != nil {
		return nil, err
	}

	zap.L().Info("insights regenerated",
		zap.String("job", jobName),
		zap.Int("feedback_count", insights.FeedbackCount),
		zap.Float64("agreement_rate", insights.Metrics["agreement_rate"]),
	)
	return &insights, nil
}

// metrics computes effectiveness numbers from the feedback corpus.
func metrics(recs []model.FeedbackRecord) map[string]float64 {
	out := map[string]float64{
		"agreement_rate": model.AgreementRate(recs),
	}

	var deltaSum float64
	scored := 0
	for _, r := range recs {
		if r.Feedback.HumanScore == nil {
			continue
		}
		deltaSum += float64(r.Evaluation.OverallScore - *r.Feedback.HumanScore)
		scored++
	}
	if scored > 0 {
		out["avg_score_delta"] = deltaSum / float64(scored)
	}
	return out
}
