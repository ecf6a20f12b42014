package eval

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/policy"
	"github.com/sells-group/screening-cli/internal/resilience"
	"github.com/sells-group/screening-cli/pkg/anthropic"
)

// Evaluator scores candidates against a job via the Anthropic API.
type Evaluator struct {
	client anthropic.Client
	cfg    config.AnthropicConfig
	retry  resilience.RetryConfig
}

// NewEvaluator creates an evaluator over the given client.
func NewEvaluator(client anthropic.Client, cfg config.AnthropicConfig) *Evaluator {
	retry := resilience.DefaultRetryConfig()
	if cfg.MaxRetryAttempts > 0 {
		retry.MaxAttempts = cfg.MaxRetryAttempts
	}
	retry.OnRetry = resilience.RetryLogger("anthropic", "evaluate")
	return &Evaluator{client: client, cfg: cfg, retry: retry}
}

// Evaluate scores one candidate. Screening filter actions are applied to the
// model's verdict before it is returned. Evaluate never fails outright: when
// the API is unreachable or the response unparseable, it returns a zero-score
// error evaluation so the batch can continue, along with the cause.
func (e *Evaluator) Evaluate(ctx context.Context, job model.JobContext, cand model.Candidate, insights string, rules []policy.Rule) (model.Evaluation, error) {
	req := anthropic.MessageRequest{
		Model:       e.cfg.Model,
		MaxTokens:   e.cfg.MaxTokens,
		System:      buildSystemBlocks(job, insights, rules),
		Messages:    []anthropic.Message{{Role: "user", Content: buildUserPrompt(cand)}},
		Temperature: &e.cfg.Temperature,
	}

	resp, err := resilience.DoVal(ctx, e.retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return errorEvaluation(job.Name, cand.Name, insights, err), err
	}
	resp.Usage.LogCost(e.cfg.Model, "evaluate")

	raw, err := parseEvaluation(resp.Text())
	if err != nil {
		zap.L().Error("unparseable evaluation response",
			zap.String("candidate", cand.Name), zap.Error(err))
		return errorEvaluation(job.Name, cand.Name, insights, err), err
	}

	ev := raw.toEvaluation(job.Name, cand.Name)
	ev.InsightsUsed = insights
	ev.Timestamp = time.Now().UTC()
	ev = policy.Enforce(ev, rules)

	zap.L().Info("candidate evaluated",
		zap.String("job", job.Name),
		zap.String("candidate", cand.Name),
		zap.Int("score", ev.OverallScore),
		zap.String("recommendation", string(ev.Recommendation)),
		zap.Strings("rules_applied", ev.RulesApplied),
	)
	return ev, nil
}

// GenerateInsights distills accumulated human feedback into fresh guidance
// text. The returned text replaces any previous insights wholesale.
func (e *Evaluator) GenerateInsights(ctx context.Context, job model.JobContext, records []model.FeedbackRecord) (string, error) {
	if len(records) == 0 {
		return "", eris.New("eval: no feedback records to distill")
	}

	system, user := buildInsightsPrompt(job, records)
	req := anthropic.MessageRequest{
		Model:     e.cfg.Model,
		MaxTokens: e.cfg.MaxTokens,
		System:    system,
		Messages:  []anthropic.Message{{Role: "user", Content: user}},
	}

	retry := e.retry
	retry.OnRetry = resilience.RetryLogger("anthropic", "generate-insights")
	resp, err := resilience.DoVal(ctx, retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		return e.client.CreateMessage(ctx, req)
	})
	if err != nil {
		return "", eris.Wrap(err, "eval: generate insights")
	}
	resp.Usage.LogCost(e.cfg.Model, "generate-insights")

	return resp.Text(), nil
}

// errorEvaluation is the sentinel evaluation recorded when scoring fails, so
// a failed candidate stays visible in rankings instead of silently missing.
func errorEvaluation(jobName, candidateName, insights string, cause error) model.Evaluation {
	return model.Evaluation{
		ID:                model.NewEvaluationID(),
		CandidateName:     candidateName,
		JobName:           jobName,
		OverallScore:      0,
		Recommendation:    model.No,
		InterviewPriority: model.PriorityLow,
		Concerns:          []string{fmt.Sprintf("API Error: %v", cause)},
		DetailedNotes:     "Evaluation failed before a verdict was produced.",
		InsightsUsed:      insights,
		Timestamp:         time.Now().UTC(),
	}
}
