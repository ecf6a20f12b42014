package intake

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/identity"
	"github.com/sells-group/screening-cli/internal/records"
)

// Suffixes appended to record names when a submission must be kept separate
// from an existing record of the same name.
const (
	duplicateCheckSuffix = "__DUPLICATE_CHECK"
	needsReviewSuffix    = "__NEEDS_REVIEW"
)

// Resolver decides which record directory a candidate submission lands in.
type Resolver struct {
	store *records.Store
	cfg   config.IntakeConfig
}

// NewResolver creates a resolver over the given record store.
func NewResolver(store *records.Store, cfg config.IntakeConfig) *Resolver {
	return &Resolver{store: store, cfg: cfg}
}

// Resolution is the outcome of resolving one submission.
type Resolution struct {
	// RecordName is the directory name the submission was assigned, which may
	// carry a disambiguation suffix.
	RecordName string

	// Kind is the identity classification that produced this resolution.
	Kind identity.Kind

	// Merged is true when the submission was folded into an existing record.
	Merged bool

	// Flagged names the counterpart record when a duplicate warning was
	// written.
	Flagged string
}

// Resolve classifies a submission against the job's existing records and
// returns the record directory it belongs in. It updates the target record's
// identity metadata and, for duplicate suspects, writes warnings on both
// records. Resolving the same submission twice is a merge into the record the
// first pass created, never a second record.
func (r *Resolver) Resolve(jobName, candidateName string, id identity.Identity) (Resolution, error) {
	existing, err := r.store.Identities(jobName)
	if err != nil {
		return Resolution{}, err
	}

	match := identity.Classify(candidateName, id, existing)
	log := zap.L().With(
		zap.String("job", jobName),
		zap.String("candidate", candidateName),
		zap.String("classification", string(match.Kind)),
	)

	switch match.Kind {
	case identity.KindResubmission:
		log.Info("merging resubmission", zap.String("record", match.Existing.Name))
		return r.merge(jobName, match.Existing.Name, id, match.Kind)

	case identity.KindDuplicateSuspect:
		name, err := r.allocate(jobName, candidateName+duplicateCheckSuffix)
		if err != nil {
			return Resolution{}, err
		}
		if err := r.create(jobName, name, id); err != nil {
			return Resolution{}, err
		}
		// Both sides get a warning so neither record looks clean on its own.
		if err := r.store.WriteDuplicateWarning(jobName, name, match.Existing.Name, match.Shared); err != nil {
			return Resolution{}, err
		}
		if err := r.store.WriteDuplicateWarning(jobName, match.Existing.Name, name, match.Shared); err != nil {
			return Resolution{}, err
		}
		log.Warn("possible duplicate candidate",
			zap.String("record", name),
			zap.String("counterpart", match.Existing.Name),
		)
		return Resolution{RecordName: name, Kind: match.Kind, Flagged: match.Existing.Name}, nil

	case identity.KindNameCollision:
		name, err := r.allocateNumbered(jobName, candidateName)
		if err != nil {
			return Resolution{}, err
		}
		if err := r.create(jobName, name, id); err != nil {
			return Resolution{}, err
		}
		log.Info("name collision, keeping records separate", zap.String("record", name))
		return Resolution{RecordName: name, Kind: match.Kind}, nil

	case identity.KindAmbiguous:
		if r.cfg.AmbiguousReuse {
			log.Info("ambiguous identity, reusing existing record",
				zap.String("record", match.Existing.Name))
			return r.merge(jobName, match.Existing.Name, id, match.Kind)
		}
		name, err := r.allocate(jobName, candidateName+needsReviewSuffix)
		if err != nil {
			return Resolution{}, err
		}
		if err := r.create(jobName, name, id); err != nil {
			return Resolution{}, err
		}
		log.Warn("ambiguous identity, record needs manual review", zap.String("record", name))
		return Resolution{RecordName: name, Kind: match.Kind}, nil

	default: // KindNew
		if err := r.create(jobName, candidateName, id); err != nil {
			return Resolution{}, err
		}
		log.Info("created candidate record")
		return Resolution{RecordName: candidateName, Kind: identity.KindNew}, nil
	}
}

// merge folds a submission's identifiers into an existing record.
func (r *Resolver) merge(jobName, recordName string, id identity.Identity, kind identity.Kind) (Resolution, error) {
	meta, err := r.store.LoadMeta(jobName, recordName)
	if err != nil {
		return Resolution{}, err
	}
	meta.Identity = identity.Union(meta.Identity, id)
	if err := r.store.SaveMeta(jobName, recordName, meta); err != nil {
		return Resolution{}, err
	}
	return Resolution{RecordName: recordName, Kind: kind, Merged: true}, nil
}

func (r *Resolver) create(jobName, recordName string, id identity.Identity) error {
	return r.store.SaveMeta(jobName, recordName, records.Meta{Identity: id})
}

// allocate returns base if it is free, otherwise base_2, base_3, and so on.
func (r *Resolver) allocate(jobName, base string) (string, error) {
	taken, err := r.takenNames(jobName)
	if err != nil {
		return "", err
	}
	if _, ok := taken[base]; !ok {
		return base, nil
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s_%d", base, i)
		if _, ok := taken[name]; !ok {
			return name, nil
		}
	}
}

// allocateNumbered returns base__2, base__3, and so on, skipping the bare
// base which the colliding record already holds.
func (r *Resolver) allocateNumbered(jobName, base string) (string, error) {
	taken, err := r.takenNames(jobName)
	if err != nil {
		return "", err
	}
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s__%d", base, i)
		if _, ok := taken[name]; !ok {
			return name, nil
		}
	}
}

func (r *Resolver) takenNames(jobName string) (map[string]struct{}, error) {
	names, err := r.store.List(jobName)
	if err != nil {
		return nil, eris.Wrapf(err, "intake: list records for %s", jobName)
	}
	taken := make(map[string]struct{}, len(names))
	for _, n := range names {
		taken[n] = struct{}{}
	}
	return taken, nil
}
