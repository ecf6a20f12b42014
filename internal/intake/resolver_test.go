package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/identity"
	"github.com/sells-group/screening-cli/internal/records"
)

const testJob = "backend-eng"

func newTestResolver(t *testing.T) (*Resolver, *records.Store) {
	t.Helper()
	store := records.NewStore(config.DataConfig{BaseDir: t.TempDir()})
	return NewResolver(store, config.IntakeConfig{AmbiguousReuse: true}), store
}

func TestResolveNew(t *testing.T) {
	r, store := newTestResolver(t)

	res, err := r.Resolve(testJob, "jane_doe", identity.Identity{Emails: []string{"jane@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", res.RecordName)
	assert.Equal(t, identity.KindNew, res.Kind)
	assert.False(t, res.Merged)

	meta, err := store.LoadMeta(testJob, "jane_doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, meta.Emails)
}

func TestResolveResubmissionMerges(t *testing.T) {
	r, store := newTestResolver(t)

	id := identity.Identity{Emails: []string{"jane@example.com"}}
	_, err := r.Resolve(testJob, "jane_doe", id)
	require.NoError(t, err)

	// Same person again, now with a phone too.
	res, err := r.Resolve(testJob, "jane_doe", identity.Identity{
		Emails: []string{"jane@example.com"},
		Phones: []string{"5551234567"},
	})
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", res.RecordName)
	assert.True(t, res.Merged)

	names, err := store.List(testJob)
	require.NoError(t, err)
	assert.Equal(t, []string{"jane_doe"}, names)

	meta, err := store.LoadMeta(testJob, "jane_doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, meta.Emails)
	assert.Equal(t, []string{"5551234567"}, meta.Phones)
}

func TestResolveIdempotent(t *testing.T) {
	r, store := newTestResolver(t)

	id := identity.Identity{Emails: []string{"jane@example.com"}}
	first, err := r.Resolve(testJob, "jane_doe", id)
	require.NoError(t, err)
	second, err := r.Resolve(testJob, "jane_doe", id)
	require.NoError(t, err)

	assert.Equal(t, first.RecordName, second.RecordName)
	names, err := store.List(testJob)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestResolveDuplicateSuspect(t *testing.T) {
	r, store := newTestResolver(t)

	shared := identity.Identity{Phones: []string{"5551234567"}}
	_, err := r.Resolve(testJob, "jane_doe", shared)
	require.NoError(t, err)

	res, err := r.Resolve(testJob, "j_smith", shared)
	require.NoError(t, err)
	assert.Equal(t, "j_smith__DUPLICATE_CHECK", res.RecordName)
	assert.Equal(t, identity.KindDuplicateSuspect, res.Kind)
	assert.Equal(t, "jane_doe", res.Flagged)

	// Both records carry the warning.
	assert.True(t, store.HasDuplicateWarning(testJob, "j_smith__DUPLICATE_CHECK"))
	assert.True(t, store.HasDuplicateWarning(testJob, "jane_doe"))
	assert.Equal(t, "jane_doe", store.WarningCounterpart(testJob, "j_smith__DUPLICATE_CHECK"))
}

func TestResolveDuplicateSuspectSuffixAllocation(t *testing.T) {
	r, store := newTestResolver(t)

	// Occupy the first suffix manually.
	require.NoError(t, store.SaveMeta(testJob, "j_smith__DUPLICATE_CHECK", records.Meta{}))

	shared := identity.Identity{Phones: []string{"5551234567"}}
	_, err := r.Resolve(testJob, "jane_doe", shared)
	require.NoError(t, err)

	res, err := r.Resolve(testJob, "j_smith", shared)
	require.NoError(t, err)
	assert.Equal(t, "j_smith__DUPLICATE_CHECK_2", res.RecordName)
}

func TestResolveNameCollision(t *testing.T) {
	r, store := newTestResolver(t)

	_, err := r.Resolve(testJob, "jane_doe", identity.Identity{Emails: []string{"jane.a@example.com"}})
	require.NoError(t, err)

	res, err := r.Resolve(testJob, "jane_doe", identity.Identity{Emails: []string{"jane.b@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, "jane_doe__2", res.RecordName)
	assert.Equal(t, identity.KindNameCollision, res.Kind)

	names, err := store.List(testJob)
	require.NoError(t, err)
	assert.Equal(t, []string{"jane_doe", "jane_doe__2"}, names)
}

func TestResolveAmbiguousReuse(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve(testJob, "jane_doe", identity.Identity{})
	require.NoError(t, err)

	res, err := r.Resolve(testJob, "jane_doe", identity.Identity{})
	require.NoError(t, err)
	assert.Equal(t, identity.KindAmbiguous, res.Kind)
	assert.Equal(t, "jane_doe", res.RecordName)
	assert.True(t, res.Merged)
}

func TestResolveAmbiguousSeparate(t *testing.T) {
	store := records.NewStore(config.DataConfig{BaseDir: t.TempDir()})
	r := NewResolver(store, config.IntakeConfig{AmbiguousReuse: false})

	_, err := r.Resolve(testJob, "jane_doe", identity.Identity{})
	require.NoError(t, err)

	res, err := r.Resolve(testJob, "jane_doe", identity.Identity{})
	require.NoError(t, err)
	assert.Equal(t, identity.KindAmbiguous, res.Kind)
	assert.Equal(t, "jane_doe__NEEDS_REVIEW", res.RecordName)
	assert.False(t, res.Merged)
}
