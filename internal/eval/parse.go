package eval

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/model"
)

// rawEvaluation mirrors the JSON shape the model is instructed to return.
type rawEvaluation struct {
	OverallScore      int      `json:"overall_score"`
	Recommendation    string   `json:"recommendation"`
	InterviewPriority string   `json:"interview_priority"`
	Strengths         []string `json:"strengths"`
	Concerns          []string `json:"concerns"`
	DetailedNotes     string   `json:"detailed_notes"`
	RulesApplied      []string `json:"rules_applied"`
}

// parseEvaluation extracts the verdict JSON from a model response. Markdown
// code fences and surrounding prose are tolerated; scores are clamped to
// [0, 100] and unknown enum values fall back to their weakest level.
func parseEvaluation(text string) (rawEvaluation, error) {
	var raw rawEvaluation

	payload := stripFences(text)
	start := strings.Index(payload, "{")
	end := strings.LastIndex(payload, "}")
	if start < 0 || end <= start {
		return raw, eris.New("eval: no JSON object in response")
	}

	if err := json.Unmarshal([]byte(payload[start:end+1]), &raw); err != nil {
		return raw, eris.Wrap(err, "eval: parse response")
	}

	if raw.OverallScore < 0 {
		raw.OverallScore = 0
	}
	if raw.OverallScore > 100 {
		raw.OverallScore = 100
	}
	return raw, nil
}

// stripFences removes a wrapping markdown code fence if present.
func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// toEvaluation converts a parsed verdict into a persisted Evaluation.
func (r rawEvaluation) toEvaluation(jobName, candidateName string) model.Evaluation {
	return model.Evaluation{
		ID:                model.NewEvaluationID(),
		CandidateName:     candidateName,
		JobName:           jobName,
		OverallScore:      r.OverallScore,
		Recommendation:    model.ParseRecommendation(r.Recommendation),
		InterviewPriority: model.ParsePriority(r.InterviewPriority),
		Strengths:         r.Strengths,
		Concerns:          r.Concerns,
		DetailedNotes:     r.DetailedNotes,
		RulesApplied:      r.RulesApplied,
	}
}
