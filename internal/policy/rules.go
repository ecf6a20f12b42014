// Package policy applies deterministic screening filter rules on top of model
// evaluations, so that hard requirements are enforced in code rather than
// trusted to the model.
package policy

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/screening-cli/internal/model"
)

// Action is the adjustment applied when a candidate fails a filter.
type Action struct {
	// DeductPoints is subtracted from the overall score. Deductions from
	// multiple failed filters accumulate; the score never drops below zero.
	DeductPoints *int `yaml:"deduct_points" json:"deduct_points,omitempty"`

	// CapRecommendation bounds the recommendation from above. It only lowers,
	// never raises.
	CapRecommendation model.Recommendation `yaml:"cap_recommendation" json:"cap_recommendation,omitempty"`

	// SetRecommendation forces the recommendation outright and wins over any
	// cap.
	SetRecommendation model.Recommendation `yaml:"set_recommendation" json:"set_recommendation,omitempty"`
}

// Rule is one screening filter: the criteria the model checks and the action
// taken when a candidate fails it.
type Rule struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description,omitempty"`

	// Criteria is the requirement text included in the evaluation prompt.
	Criteria string `yaml:"criteria" json:"criteria"`

	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled" json:"enabled,omitempty"`

	OnFail Action `yaml:"on_fail" json:"on_fail"`
}

// IsEnabled reports whether the rule participates in screening.
func (r Rule) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// RuleSet is a job's screening filter configuration.
type RuleSet struct {
	Filters []Rule `yaml:"filters" json:"filters"`
}

// Enabled returns the rules that participate in screening, in file order.
func (rs RuleSet) Enabled() []Rule {
	var out []Rule
	for _, r := range rs.Filters {
		if r.IsEnabled() {
			out = append(out, r)
		}
	}
	return out
}

// Load reads a job's filter rules file. A missing file is an empty rule set,
// not an error.
func Load(path string) (RuleSet, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return RuleSet{}, nil
	}
	if err != nil {
		return RuleSet{}, eris.Wrapf(err, "policy: read %s", path)
	}

	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, eris.Wrapf(err, "policy: parse %s", path)
	}
	for _, r := range rs.Filters {
		if r.ID == "" {
			return RuleSet{}, eris.Errorf("policy: rule without id in %s", path)
		}
	}
	return rs, nil
}
