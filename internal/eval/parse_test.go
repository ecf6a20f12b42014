package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluationBareJSON(t *testing.T) {
	raw, err := parseEvaluation(`{"overall_score": 85, "recommendation": "YES", "interview_priority": "HIGH", "strengths": ["go"], "concerns": [], "detailed_notes": "Failed filters: none\nSolid."}`)
	require.NoError(t, err)
	assert.Equal(t, 85, raw.OverallScore)
	assert.Equal(t, "YES", raw.Recommendation)
	assert.Equal(t, []string{"go"}, raw.Strengths)
}

func TestParseEvaluationFenced(t *testing.T) {
	text := "```json\n{\"overall_score\": 70, \"recommendation\": \"MAYBE\"}\n```"
	raw, err := parseEvaluation(text)
	require.NoError(t, err)
	assert.Equal(t, 70, raw.OverallScore)
}

func TestParseEvaluationSurroundingProse(t *testing.T) {
	text := "Here is my assessment:\n{\"overall_score\": 60, \"recommendation\": \"MAYBE\"}\nLet me know."
	raw, err := parseEvaluation(text)
	require.NoError(t, err)
	assert.Equal(t, 60, raw.OverallScore)
}

func TestParseEvaluationClampsScore(t *testing.T) {
	raw, err := parseEvaluation(`{"overall_score": 150}`)
	require.NoError(t, err)
	assert.Equal(t, 100, raw.OverallScore)

	raw, err = parseEvaluation(`{"overall_score": -5}`)
	require.NoError(t, err)
	assert.Equal(t, 0, raw.OverallScore)
}

func TestParseEvaluationNoJSON(t *testing.T) {
	_, err := parseEvaluation("I cannot evaluate this candidate.")
	assert.Error(t, err)
}

func TestToEvaluationFallbacks(t *testing.T) {
	raw := rawEvaluation{OverallScore: 50, Recommendation: "DEFINITELY", InterviewPriority: "URGENT"}
	ev := raw.toEvaluation("backend-eng", "jane_doe")
	assert.Equal(t, "backend-eng", ev.JobName)
	assert.Equal(t, "jane_doe", ev.CandidateName)
	assert.Equal(t, "NO", string(ev.Recommendation))
	assert.Equal(t, "LOW", string(ev.InterviewPriority))
	assert.NotEmpty(t, ev.ID)
}
