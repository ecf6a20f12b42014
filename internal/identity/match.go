package identity

import "sort"

// Kind classifies how a new submission relates to the existing candidate pool.
type Kind string

// Match classifications.
const (
	// KindNew: no identifier overlap and no name collision.
	KindNew Kind = "new"

	// KindResubmission: identifier overlap with a record of the same name.
	KindResubmission Kind = "resubmission"

	// KindDuplicateSuspect: identifier overlap with a record of a different
	// name — a possible alias or fraudulent duplicate, kept separate and
	// flagged for review.
	KindDuplicateSuspect Kind = "duplicate_suspect"

	// KindNameCollision: same name, no identifier overlap, and both sides
	// carry identifiers — two distinct people sharing a name.
	KindNameCollision Kind = "name_collision"

	// KindAmbiguous: same name, no identifier overlap, and at least one side
	// has no identifiers at all — identity cannot be determined.
	KindAmbiguous Kind = "ambiguous"
)

// Record is an existing candidate's identity as stored on disk.
type Record struct {
	Name     string
	Identity Identity
}

// Match is the matcher's verdict for a new submission.
type Match struct {
	Kind     Kind
	Existing *Record          // the matched record, nil for KindNew
	Shared   []SharedCategory // overlapping categories, set for identifier matches
}

// Classify compares a new candidate's identity against every existing record
// for the job. Records are traversed in lexical name order so the outcome
// does not depend on directory scan order; when several records overlap, the
// one sharing the most identifier categories wins, ties broken by name.
func Classify(name string, id Identity, existing []Record) Match {
	records := make([]Record, len(existing))
	copy(records, existing)
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })

	var (
		best       *Record
		bestShared []SharedCategory
	)
	for i := range records {
		shared := Shared(id, records[i].Identity)
		if len(shared) == 0 {
			continue
		}
		if best == nil || len(shared) > len(bestShared) {
			best = &records[i]
			bestShared = shared
		}
	}

	if best != nil {
		kind := KindDuplicateSuspect
		if best.Name == name {
			kind = KindResubmission
		}
		return Match{Kind: kind, Existing: best, Shared: bestShared}
	}

	// No identifier overlap: check for a name collision.
	for i := range records {
		if records[i].Name != name {
			continue
		}
		if id.HasAny() && records[i].Identity.HasAny() {
			return Match{Kind: KindNameCollision, Existing: &records[i]}
		}
		return Match{Kind: KindAmbiguous, Existing: &records[i]}
	}

	return Match{Kind: KindNew}
}
