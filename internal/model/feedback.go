package model

import (
	"time"

	"github.com/google/uuid"
)

// HumanFeedback is a reviewer's verdict on an AI evaluation.
type HumanFeedback struct {
	ID                   string            `json:"feedback_id"`
	EvaluationID         string            `json:"evaluation_id"`
	HumanRecommendation  Recommendation    `json:"human_recommendation"`
	HumanScore           *int              `json:"human_score,omitempty"`
	Notes                string            `json:"feedback_notes,omitempty"`
	SpecificCorrections  map[string]string `json:"specific_corrections,omitempty"`
	Timestamp            time.Time         `json:"timestamp"`
}

// NewFeedbackID returns a fresh feedback id.
func NewFeedbackID() string {
	return "feedback_" + uuid.New().String()
}

// FeedbackRecord pairs a human verdict with the evaluation it judged.
type FeedbackRecord struct {
	ID            string        `json:"record_id"`
	CandidateName string        `json:"candidate_name"`
	JobName       string        `json:"job_name"`
	Evaluation    Evaluation    `json:"original_evaluation"`
	Feedback      HumanFeedback `json:"human_feedback"`
}

// NewRecordID returns a fresh feedback-record id.
func NewRecordID() string {
	return "record_" + uuid.New().String()
}

// JobInsights is regenerated guidance derived from accumulated feedback.
// Regeneration replaces the text wholesale; insights are never edited in place.
type JobInsights struct {
	ID            string             `json:"insights_id"`
	JobName       string             `json:"job_name"`
	Insights      string             `json:"generated_insights"`
	FeedbackCount int                `json:"feedback_count"`
	Metrics       map[string]float64 `json:"effectiveness_metrics,omitempty"`
	LastUpdated   time.Time          `json:"last_updated"`
}

// NewInsightsID returns a fresh insights id.
func NewInsightsID() string {
	return "insights_" + uuid.New().String()
}

// FeedbackSummaryEntry is one line of a job's feedback summary.
type FeedbackSummaryEntry struct {
	CandidateName       string         `json:"candidate_name"`
	Timestamp           time.Time      `json:"timestamp"`
	HumanRecommendation Recommendation `json:"human_recommendation"`
	AIRecommendation    Recommendation `json:"ai_recommendation"`
}

// FeedbackSummary is the running per-job feedback tally driving the insight
// regeneration cadence.
type FeedbackSummary struct {
	JobName     string                 `json:"job_name"`
	TotalCount  int                    `json:"total_feedback_count"`
	Records     []FeedbackSummaryEntry `json:"feedback_records"`
	LastUpdated time.Time              `json:"last_updated"`
}

// AgreementRate is the fraction of records where the human and model
// recommendations are literally equal. Returns 0 for an empty slice.
func AgreementRate(records []FeedbackRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	agreements := 0
	for _, r := range records {
		if r.Feedback.HumanRecommendation == r.Evaluation.Recommendation {
			agreements++
		}
	}
	return float64(agreements) / float64(len(records))
}
