package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNew(t *testing.T) {
	m := Classify("jane_doe", Identity{Emails: []string{"jane@example.com"}}, nil)
	assert.Equal(t, KindNew, m.Kind)
	assert.Nil(t, m.Existing)
}

func TestClassifyResubmission(t *testing.T) {
	existing := []Record{
		{Name: "jane_doe", Identity: Identity{Emails: []string{"jane@example.com"}}},
	}

	m := Classify("jane_doe", Identity{Emails: []string{"jane@example.com"}}, existing)
	require.Equal(t, KindResubmission, m.Kind)
	assert.Equal(t, "jane_doe", m.Existing.Name)
	require.Len(t, m.Shared, 1)
	assert.Equal(t, CategoryEmails, m.Shared[0].Category)
}

func TestClassifyDuplicateSuspect(t *testing.T) {
	existing := []Record{
		{Name: "j_smith", Identity: Identity{Phones: []string{"5551234567"}}},
	}

	m := Classify("jane_doe", Identity{Phones: []string{"5551234567"}}, existing)
	require.Equal(t, KindDuplicateSuspect, m.Kind)
	assert.Equal(t, "j_smith", m.Existing.Name)
}

func TestClassifyNameCollision(t *testing.T) {
	existing := []Record{
		{Name: "jane_doe", Identity: Identity{Emails: []string{"other.jane@example.com"}}},
	}

	m := Classify("jane_doe", Identity{Emails: []string{"jane@example.com"}}, existing)
	assert.Equal(t, KindNameCollision, m.Kind)
}

func TestClassifyAmbiguousNoIdentifiers(t *testing.T) {
	existing := []Record{{Name: "jane_doe"}}

	m := Classify("jane_doe", Identity{}, existing)
	assert.Equal(t, KindAmbiguous, m.Kind)
}

func TestClassifyAmbiguousOneSided(t *testing.T) {
	existing := []Record{
		{Name: "jane_doe", Identity: Identity{Emails: []string{"jane@example.com"}}},
	}

	m := Classify("jane_doe", Identity{}, existing)
	assert.Equal(t, KindAmbiguous, m.Kind)
}

func TestClassifyIdentifierMatchBeatsNameMatch(t *testing.T) {
	// The same-name record has no overlap; the different-name record does.
	existing := []Record{
		{Name: "jane_doe", Identity: Identity{Emails: []string{"unrelated@example.com"}}},
		{Name: "jane_smith", Identity: Identity{Emails: []string{"jane@example.com"}}},
	}

	m := Classify("jane_doe", Identity{Emails: []string{"jane@example.com"}}, existing)
	require.Equal(t, KindDuplicateSuspect, m.Kind)
	assert.Equal(t, "jane_smith", m.Existing.Name)
}

func TestClassifyOrderIndependent(t *testing.T) {
	id := Identity{Emails: []string{"jane@example.com"}, Phones: []string{"5551234567"}}
	a := Record{Name: "alpha", Identity: Identity{Emails: []string{"jane@example.com"}}}
	b := Record{Name: "beta", Identity: Identity{Phones: []string{"5551234567"}}}

	m1 := Classify("jane_doe", id, []Record{a, b})
	m2 := Classify("jane_doe", id, []Record{b, a})

	assert.Equal(t, m1.Kind, m2.Kind)
	assert.Equal(t, m1.Existing.Name, m2.Existing.Name)
}

func TestClassifyMostSharedCategoriesWins(t *testing.T) {
	id := Identity{
		Emails: []string{"jane@example.com"},
		Phones: []string{"5551234567"},
	}
	existing := []Record{
		{Name: "one_category", Identity: Identity{Emails: []string{"jane@example.com"}}},
		{Name: "two_categories", Identity: Identity{
			Emails: []string{"jane@example.com"},
			Phones: []string{"5551234567"},
		}},
	}

	m := Classify("jane_doe", id, existing)
	assert.Equal(t, "two_categories", m.Existing.Name)
}
