// Package report generates candidate ranking reports from stored evaluations.
package report

import (
	"sort"
	"strings"

	"github.com/sells-group/screening-cli/internal/model"
)

// Suffixes that carry no identity information and are stripped once from the
// end of a name before comparison.
var roleSuffixes = []string{
	"_resume", "_cv", "_cover_letter", "_coverletter", "_cover", "_application", "_questionnaire",
}

var reviewSuffixes = []string{"__DUPLICATE_CHECK", "__NEEDS_REVIEW"}

// NormalizeName reduces a candidate name to its comparison form: review
// suffixes and one trailing role suffix removed, lowercased, tokens sorted so
// reordered name parts compare equal.
func NormalizeName(name string) string {
	for _, s := range reviewSuffixes {
		if idx := strings.Index(name, s); idx > 0 {
			name = name[:idx]
			break
		}
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range roleSuffixes {
		if trimmed, found := strings.CutSuffix(name, s); found && trimmed != "" {
			name = trimmed
			break
		}
	}
	toks := tokens(name)
	sort.Strings(toks)
	return strings.Join(toks, "_")
}

func tokens(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SameCandidate reports whether two evaluation names plausibly refer to the
// same person: equal normalized forms, or overlapping name tokens where one
// token set contains the other ("john_doe" vs "doe"). Disjoint names never
// match.
func SameCandidate(a, b string) bool {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return na == nb && na != ""
	}
	if na == nb {
		return true
	}

	// Numbered records ("jane_doe__2") are distinct people by construction
	// and never fold into their unnumbered counterpart.
	if !equalNumericTokens(na, nb) {
		return false
	}

	ta, tb := tokens(na), tokens(nb)
	setA := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		setA[t] = struct{}{}
	}
	overlap := false
	bInA := true
	for _, t := range tb {
		if _, ok := setA[t]; ok {
			overlap = true
		} else {
			bInA = false
		}
	}
	if !overlap {
		return false
	}
	if bInA {
		return true
	}

	setB := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		setB[t] = struct{}{}
	}
	for _, t := range ta {
		if _, ok := setB[t]; !ok {
			return false
		}
	}
	return true
}

func equalNumericTokens(a, b string) bool {
	numeric := func(name string) map[string]struct{} {
		out := make(map[string]struct{})
		for _, t := range tokens(name) {
			if strings.IndexFunc(t, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
				out[t] = struct{}{}
			}
		}
		return out
	}
	sa, sb := numeric(a), numeric(b)
	if len(sa) != len(sb) {
		return false
	}
	for t := range sa {
		if _, ok := sb[t]; !ok {
			return false
		}
	}
	return true
}

// Deduplicate collapses evaluations that refer to the same candidate into
// one. The evaluation with the more specific name (more tokens) survives;
// among equally specific names the newer evaluation wins. The input is not
// modified, and the result is ordered deterministically regardless of input
// order.
func Deduplicate(evals []model.Evaluation) []model.Evaluation {
	sorted := make([]model.Evaluation, len(evals))
	copy(sorted, evals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CandidateName != sorted[j].CandidateName {
			return sorted[i].CandidateName < sorted[j].CandidateName
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	var kept []model.Evaluation
	for _, ev := range sorted {
		merged := false
		for i := range kept {
			if !SameCandidate(kept[i].CandidateName, ev.CandidateName) {
				continue
			}
			if prefer(ev, kept[i]) {
				kept[i] = ev
			}
			merged = true
			break
		}
		if !merged {
			kept = append(kept, ev)
		}
	}
	return kept
}

// prefer reports whether a should replace b: more name tokens wins, then the
// newer timestamp.
func prefer(a, b model.Evaluation) bool {
	ta := len(tokens(NormalizeName(a.CandidateName)))
	tb := len(tokens(NormalizeName(b.CandidateName)))
	if ta != tb {
		return ta > tb
	}
	return a.Timestamp.After(b.Timestamp)
}
