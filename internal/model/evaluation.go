package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a hiring recommendation level.
type Recommendation string

// Recommendation levels, weakest to strongest.
const (
	StrongNo  Recommendation = "STRONG_NO"
	No        Recommendation = "NO"
	Maybe     Recommendation = "MAYBE"
	Yes       Recommendation = "YES"
	StrongYes Recommendation = "STRONG_YES"
)

// recommendationRank fixes the total order used for capping:
// STRONG_NO < NO < MAYBE < YES < STRONG_YES.
var recommendationRank = map[Recommendation]int{
	StrongNo:  0,
	No:        1,
	Maybe:     2,
	Yes:       3,
	StrongYes: 4,
}

// Rank returns the recommendation's position on the fixed ordering,
// or -1 for unknown values.
func (r Recommendation) Rank() int {
	rank, ok := recommendationRank[r]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether the recommendation is one of the five known levels.
func (r Recommendation) Valid() bool {
	return r.Rank() >= 0
}

// ParseRecommendation maps a string to a Recommendation, falling back to NO
// for unknown values.
func ParseRecommendation(s string) Recommendation {
	r := Recommendation(s)
	if !r.Valid() {
		return No
	}
	return r
}

// Priority is an interview priority level.
type Priority string

// Interview priority levels.
const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority maps a string to a Priority, falling back to LOW for
// unknown values.
func ParsePriority(s string) Priority {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p
	default:
		return PriorityLow
	}
}

// Evaluation is a single assessment of a candidate for a job. Evaluations are
// immutable once persisted; a re-evaluation retires the previous one to the
// candidate's history rather than mutating it.
type Evaluation struct {
	ID                string         `json:"evaluation_id"`
	CandidateName     string         `json:"candidate_name"`
	JobName           string         `json:"job_name"`
	OverallScore      int            `json:"overall_score"`
	Recommendation    Recommendation `json:"recommendation"`
	InterviewPriority Priority       `json:"interview_priority"`
	Strengths         []string       `json:"strengths"`
	Concerns          []string       `json:"concerns"`
	DetailedNotes     string         `json:"detailed_notes"`
	InsightsUsed      string         `json:"insights_used,omitempty"`
	RulesApplied      []string       `json:"rules_applied,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
}

// NewEvaluationID returns a fresh evaluation id.
func NewEvaluationID() string {
	return "eval_" + uuid.New().String()
}
