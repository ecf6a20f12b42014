// Package eval runs candidate evaluations through the Anthropic API and
// parses the structured verdicts.
package eval

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/policy"
	"github.com/sells-group/screening-cli/pkg/anthropic"
)

const screeningInstructions = `You are an experienced technical recruiter screening candidates for a specific role.

Assess the candidate strictly against the job description and any additional guidance. Respond with a single JSON object and nothing else:

{
  "overall_score": <integer 0-100>,
  "recommendation": "STRONG_NO" | "NO" | "MAYBE" | "YES" | "STRONG_YES",
  "interview_priority": "LOW" | "MEDIUM" | "HIGH",
  "strengths": [<strings>],
  "concerns": [<strings>],
  "detailed_notes": <string>,
  "rules_applied": [<ids of failed screening filters>]
}

The first line of detailed_notes must be "Failed filters: <comma-separated filter ids>" listing every screening filter the candidate fails, or "Failed filters: none".`

// buildSystemBlocks assembles the system prompt: static instructions (cached),
// then the job context, screening filters, and any learned insights.
func buildSystemBlocks(job model.JobContext, insights string, rules []policy.Rule) []anthropic.SystemBlock {
	blocks := []anthropic.SystemBlock{
		{Text: screeningInstructions, CacheControl: &anthropic.CacheControl{TTL: "5m"}},
	}

	var ctx strings.Builder
	fmt.Fprintf(&ctx, "Role: %s\n\nJob description:\n%s\n", job.Name, job.Description)
	if job.IdealCandidate != "" {
		fmt.Fprintf(&ctx, "\nIdeal candidate profile:\n%s\n", job.IdealCandidate)
	}
	if job.WarningFlags != "" {
		fmt.Fprintf(&ctx, "\nWarning flags to watch for:\n%s\n", job.WarningFlags)
	}
	blocks = append(blocks, anthropic.SystemBlock{Text: ctx.String()})

	if len(rules) > 0 {
		var rb strings.Builder
		rb.WriteString("Screening filters to check. Report each failed filter by its id on the Failed filters line:\n")
		for _, r := range rules {
			fmt.Fprintf(&rb, "- %s: %s\n", r.ID, r.Criteria)
		}
		blocks = append(blocks, anthropic.SystemBlock{Text: rb.String()})
	}

	if insights != "" {
		blocks = append(blocks, anthropic.SystemBlock{
			Text: "Learned insights from previous human review of your evaluations for this role:\n" + insights,
		})
	}

	return blocks
}

// buildUserPrompt renders the candidate's materials.
func buildUserPrompt(c model.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidate: %s\n\nResume:\n%s\n", c.Name, c.ResumeText)
	if c.CoverLetter != "" {
		fmt.Fprintf(&b, "\nCover letter:\n%s\n", c.CoverLetter)
	}
	if c.Application != "" {
		fmt.Fprintf(&b, "\nApplication responses:\n%s\n", c.Application)
	}
	return b.String()
}

const insightsInstructions = `You review disagreements between an AI resume screener and human recruiters, and distill corrective guidance for the screener.

From the feedback below, write concise guidance (plain text, short bullet points) the screener should apply to future evaluations for this role. Focus on patterns: qualities the humans weigh differently, recurring over- or under-scoring, and concrete signals to watch for. Do not mention individual candidates by name.`

// buildInsightsPrompt renders accumulated human feedback for insight
// regeneration.
func buildInsightsPrompt(job model.JobContext, records []model.FeedbackRecord) (system []anthropic.SystemBlock, user string) {
	system = []anthropic.SystemBlock{
		{Text: insightsInstructions},
		{Text: fmt.Sprintf("Role: %s\n\nJob description:\n%s", job.Name, job.Description)},
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Feedback on %d evaluations:\n", len(records))
	for i, r := range records {
		fmt.Fprintf(&b, "\n--- Feedback %d ---\n", i+1)
		fmt.Fprintf(&b, "AI: score %d, recommendation %s\n", r.Evaluation.OverallScore, r.Evaluation.Recommendation)
		fmt.Fprintf(&b, "Human: recommendation %s", r.Feedback.HumanRecommendation)
		if r.Feedback.HumanScore != nil {
			fmt.Fprintf(&b, ", score %d", *r.Feedback.HumanScore)
		}
		b.WriteString("\n")
		if r.Feedback.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", r.Feedback.Notes)
		}
		fields := make([]string, 0, len(r.Feedback.SpecificCorrections))
		for field := range r.Feedback.SpecificCorrections {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(&b, "Correction (%s): %s\n", field, r.Feedback.SpecificCorrections[field])
		}
	}
	return system, b.String()
}
