package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screening-cli/internal/model"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "doe_jane", NormalizeName("Jane_Doe"))
	assert.Equal(t, "doe_jane", NormalizeName("doe jane"))
	assert.Equal(t, "doe_jane", NormalizeName("jane_doe_resume"))
	assert.Equal(t, "doe_jane", NormalizeName("jane_doe__DUPLICATE_CHECK"))
	assert.Equal(t, "doe_jane", NormalizeName("jane_doe__NEEDS_REVIEW"))
}

func TestNormalizeNameStripsOnlyOneRoleSuffix(t *testing.T) {
	// Only the trailing role marker goes; inner tokens stay.
	assert.Equal(t, "cover_jane", NormalizeName("jane_cover_resume"))
}

func TestSameCandidateEqualNames(t *testing.T) {
	assert.True(t, SameCandidate("jane_doe", "Doe_Jane"))
}

func TestSameCandidateSubset(t *testing.T) {
	assert.True(t, SameCandidate("john_doe", "doe"))
	assert.True(t, SameCandidate("doe", "john_doe"))
}

func TestSameCandidateOverlapWithoutSubset(t *testing.T) {
	// Shared "doe" but neither contains the other.
	assert.False(t, SameCandidate("john_doe", "jane_doe"))
}

func TestSameCandidateDisjoint(t *testing.T) {
	assert.False(t, SameCandidate("jane_doe", "bob_smith"))
}

func TestSameCandidateNumberedRecordsStayDistinct(t *testing.T) {
	assert.False(t, SameCandidate("jane_doe", "jane_doe__2"))
	assert.True(t, SameCandidate("jane_doe__2", "jane_doe__2"))
}

func TestDeduplicateKeepsMoreSpecificName(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	evals := []model.Evaluation{
		{CandidateName: "doe", OverallScore: 50, Timestamp: newer},
		{CandidateName: "john_doe", OverallScore: 80, Timestamp: older},
	}

	out := Deduplicate(evals)
	require.Len(t, out, 1)
	assert.Equal(t, "john_doe", out[0].CandidateName)
}

func TestDeduplicateNewerWinsOnTie(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	evals := []model.Evaluation{
		{ID: "old", CandidateName: "jane_doe", Timestamp: older},
		{ID: "new", CandidateName: "doe_jane", Timestamp: newer},
	}

	out := Deduplicate(evals)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].ID)
}

func TestDeduplicateOrderIndependent(t *testing.T) {
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	evals := []model.Evaluation{
		{CandidateName: "john_doe", Timestamp: older},
		{CandidateName: "doe", Timestamp: older.Add(time.Hour)},
		{CandidateName: "bob_smith", Timestamp: older},
	}
	reversed := []model.Evaluation{evals[2], evals[1], evals[0]}

	a := Deduplicate(evals)
	b := Deduplicate(reversed)
	require.Len(t, a, 2)
	assert.Equal(t, a, b)
}

func TestDeduplicateInputUnmodified(t *testing.T) {
	evals := []model.Evaluation{
		{CandidateName: "doe"},
		{CandidateName: "john_doe"},
	}
	_ = Deduplicate(evals)
	assert.Equal(t, "doe", evals[0].CandidateName)
}
