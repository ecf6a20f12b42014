package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlapSharedEmail(t *testing.T) {
	a := Identity{Emails: []string{"jane@example.com"}}
	b := Identity{Emails: []string{"jane@example.com", "other@example.com"}}
	assert.True(t, Overlap(a, b))
}

func TestOverlapDisjoint(t *testing.T) {
	a := Identity{Emails: []string{"jane@example.com"}}
	b := Identity{Emails: []string{"john@example.com"}}
	assert.False(t, Overlap(a, b))
}

func TestOverlapEmptyNeverMatchesEmpty(t *testing.T) {
	assert.False(t, Overlap(Identity{}, Identity{}))
}

func TestOverlapAcrossCategories(t *testing.T) {
	a := Identity{Emails: []string{"jane@example.com"}}
	b := Identity{Phones: []string{"5551234567"}}
	assert.False(t, Overlap(a, b))
}

func TestSharedCanonicalOrder(t *testing.T) {
	a := Identity{
		Emails: []string{"jane@example.com"},
		GitHub: []string{"https://github.com/janedoe"},
	}
	b := Identity{
		Emails: []string{"jane@example.com"},
		GitHub: []string{"https://github.com/janedoe"},
	}

	shared := Shared(a, b)
	assert.Equal(t, []SharedCategory{
		{Category: CategoryEmails, Values: []string{"jane@example.com"}},
		{Category: CategoryGitHub, Values: []string{"https://github.com/janedoe"}},
	}, shared)
}

func TestHasAny(t *testing.T) {
	assert.False(t, Identity{}.HasAny())
	assert.True(t, Identity{Phones: []string{"5551234567"}}.HasAny())
}
