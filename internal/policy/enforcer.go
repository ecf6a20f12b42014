package policy

import (
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/model"
)

const failedFiltersMarker = "failed filters:"

// FailedFilters parses the filter IDs the model reported as failed out of an
// evaluation's detailed notes. The marker line is expected first but is
// accepted anywhere in the notes. "none" means no failures.
func FailedFilters(notes string) []string {
	for _, line := range strings.Split(notes, "\n") {
		trimmed := strings.TrimSpace(line)
		idx := strings.Index(strings.ToLower(trimmed), failedFiltersMarker)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(trimmed[idx+len(failedFiltersMarker):])
		if rest == "" || strings.EqualFold(rest, "none") {
			return nil
		}
		var ids []string
		for _, part := range strings.Split(rest, ",") {
			if id := strings.TrimSpace(part); id != "" {
				ids = append(ids, id)
			}
		}
		return ids
	}
	return nil
}

// Enforce applies the actions of every failed rule to an evaluation and
// returns the adjusted copy. It is pure: the input evaluation is not
// modified, and nothing is persisted here.
//
// The model's own rules_applied list is the primary channel for fired rule
// ids; the "Failed filters:" notes line is the fallback. Both are untrusted
// hints. Deductions accumulate and floor at zero. Caps only ever lower the
// recommendation, and when several rules cap it the strictest cap wins. A
// forced recommendation beats any cap; among several the last in rule order
// wins. The returned evaluation's RulesApplied holds the ids the enforcer
// actually matched, in rule order.
func Enforce(ev model.Evaluation, rules []Rule) model.Evaluation {
	failed := ev.RulesApplied
	if len(failed) == 0 {
		failed = FailedFilters(ev.DetailedNotes)
	}
	if len(failed) == 0 {
		return ev
	}
	failedSet := make(map[string]struct{}, len(failed))
	for _, id := range failed {
		failedSet[strings.ToLower(id)] = struct{}{}
	}

	out := ev
	out.RulesApplied = nil

	totalDeduction := 0
	var forced, ceiling model.Recommendation
	matched := make(map[string]struct{}, len(failed))

	for _, rule := range rules {
		if !rule.IsEnabled() {
			continue
		}
		if _, ok := failedSet[strings.ToLower(rule.ID)]; !ok {
			continue
		}
		matched[strings.ToLower(rule.ID)] = struct{}{}
		out.RulesApplied = append(out.RulesApplied, rule.ID)

		if rule.OnFail.DeductPoints != nil {
			totalDeduction += *rule.OnFail.DeductPoints
		}
		if set := rule.OnFail.SetRecommendation; set.Valid() {
			forced = set
		}
		if c := rule.OnFail.CapRecommendation; c.Valid() {
			if ceiling == "" || c.Rank() < ceiling.Rank() {
				ceiling = c
			}
		}
	}

	for _, id := range failed {
		if _, ok := matched[strings.ToLower(id)]; !ok {
			zap.L().Debug("reported filter id matches no rule", zap.String("id", id))
		}
	}

	if totalDeduction > 0 {
		out.OverallScore -= totalDeduction
		if out.OverallScore < 0 {
			out.OverallScore = 0
		}
	}

	switch {
	case forced != "":
		out.Recommendation = forced
	case ceiling != "" && out.Recommendation.Rank() > ceiling.Rank():
		out.Recommendation = ceiling
	}

	return out
}
