package report

import (
	"sort"
	"time"

	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/records"
)

// Row is one line of a candidate ranking report.
type Row struct {
	Rank              int                  `json:"rank"`
	CandidateName     string               `json:"candidate_name"`
	OverallScore      int                  `json:"overall_score"`
	Recommendation    model.Recommendation `json:"recommendation"`
	InterviewPriority model.Priority       `json:"interview_priority"`
	Strengths         []string             `json:"strengths,omitempty"`
	Concerns          []string             `json:"concerns,omitempty"`
	RulesApplied      []string             `json:"rules_applied,omitempty"`
	Notes             string               `json:"notes,omitempty"`
	DuplicateWarning  bool                 `json:"duplicate_warning,omitempty"`
	Rejected          bool                 `json:"rejected,omitempty"`
	EvaluatedAt       time.Time            `json:"evaluated_at"`
}

// BuildRankings loads a job's current evaluations, collapses duplicate
// candidates, and returns ranking rows sorted by score descending. Ties break
// by recommendation strength, then name.
func BuildRankings(store *records.Store, jobName string) ([]Row, error) {
	evals, err := store.Evaluations(jobName)
	if err != nil {
		return nil, err
	}
	evals = Deduplicate(evals)

	sort.Slice(evals, func(i, j int) bool {
		if evals[i].OverallScore != evals[j].OverallScore {
			return evals[i].OverallScore > evals[j].OverallScore
		}
		if ri, rj := evals[i].Recommendation.Rank(), evals[j].Recommendation.Rank(); ri != rj {
			return ri > rj
		}
		return evals[i].CandidateName < evals[j].CandidateName
	})

	rows := make([]Row, 0, len(evals))
	for i, ev := range evals {
		rows = append(rows, Row{
			Rank:              i + 1,
			CandidateName:     ev.CandidateName,
			OverallScore:      ev.OverallScore,
			Recommendation:    ev.Recommendation,
			InterviewPriority: ev.InterviewPriority,
			Strengths:         ev.Strengths,
			Concerns:          ev.Concerns,
			RulesApplied:      ev.RulesApplied,
			Notes:             ev.DetailedNotes,
			DuplicateWarning:  store.HasDuplicateWarning(jobName, ev.CandidateName),
			Rejected:          store.IsRejected(jobName, ev.CandidateName),
			EvaluatedAt:       ev.Timestamp,
		})
	}
	return rows, nil
}
