// Package pipeline orchestrates the screening flow: intake, identity
// resolution, evaluation, and report generation, with each batch recorded in
// the run ledger.
package pipeline

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/identity"
	"github.com/sells-group/screening-cli/internal/intake"
	"github.com/sells-group/screening-cli/internal/model"
	"github.com/sells-group/screening-cli/internal/ocr"
	"github.com/sells-group/screening-cli/internal/policy"
	"github.com/sells-group/screening-cli/internal/records"
	"github.com/sells-group/screening-cli/internal/report"
	"github.com/sells-group/screening-cli/internal/store"
)

// Evaluator scores one candidate. Satisfied by eval.Evaluator.
type Evaluator interface {
	Evaluate(ctx context.Context, job model.JobContext, cand model.Candidate, insights string, rules []policy.Rule) (model.Evaluation, error)
}

// Pipeline runs screening batches for a job.
type Pipeline struct {
	cfg       *config.Config
	recs      *records.Store
	resolver  *intake.Resolver
	reader    *ocr.Reader
	evaluator Evaluator
	reports   *report.Generator
	ledger    store.Store
}

// New assembles a pipeline from its parts.
func New(cfg *config.Config, recs *records.Store, reader *ocr.Reader, evaluator Evaluator, ledger store.Store) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		recs:      recs,
		resolver:  intake.NewResolver(recs, cfg.Intake),
		reader:    reader,
		evaluator: evaluator,
		reports:   report.NewGenerator(recs, cfg.Data),
		ledger:    ledger,
	}
}

// jobMaterials is everything loaded once per batch.
type jobMaterials struct {
	job      model.JobContext
	rules    []policy.Rule
	insights string
}

func (p *Pipeline) loadJob(jobName string) (jobMaterials, error) {
	job, err := p.recs.LoadJobContext(jobName)
	if err != nil {
		return jobMaterials{}, err
	}
	ruleSet, err := policy.Load(p.recs.FilterRulesPath(jobName))
	if err != nil {
		return jobMaterials{}, err
	}
	m := jobMaterials{job: job, rules: ruleSet.Enabled()}
	if ins, err := p.recs.LoadInsights(jobName); err == nil && ins != nil {
		m.insights = ins.Insights
	} else if err != nil {
		zap.L().Warn("proceeding without insights", zap.String("job", jobName), zap.Error(err))
	}
	return m, nil
}

// Process drains the intake directory for a job: every candidate file group
// is resolved to a record, extracted, evaluated, and persisted, then reports
// are generated once. The batch is recorded in the ledger.
func (p *Pipeline) Process(ctx context.Context, jobName string) (*model.ReviewRun, error) {
	mat, err := p.loadJob(jobName)
	if err != nil {
		return nil, err
	}

	scan, err := intake.Scan(p.cfg.Data.IntakeDir(), p.cfg.Intake.MaxFileSizeBytes())
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: scan intake")
	}
	for _, sk := range scan.Skipped {
		fields := []zap.Field{zap.String("path", sk.Path), zap.String("reason", sk.Reason)}
		if sk.Suggestion != "" {
			fields = append(fields, zap.String("suggestion", sk.Suggestion))
		}
		zap.L().Warn("skipping intake file", fields...)
	}

	run, err := p.ledger.CreateRun(ctx, jobName, model.TriggerProcess)
	if err != nil {
		return nil, err
	}

	var stats model.RunStats
	for _, group := range scan.Groups {
		if err := ctx.Err(); err != nil {
			p.finish(ctx, run, stats, err)
			return run, err
		}
		if group.Files.ResumePath == "" {
			stats.Skipped++
			continue
		}
		if err := p.processGroup(ctx, mat, group); err != nil {
			zap.L().Error("candidate processing failed",
				zap.String("candidate", group.Files.CandidateName), zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Evaluated++
	}

	if _, err := p.reports.Generate(jobName); err != nil {
		p.finish(ctx, run, stats, err)
		return run, err
	}

	p.finish(ctx, run, stats, nil)
	run.Status = model.RunStatusComplete
	run.Evaluated, run.Skipped, run.Failed = stats.Evaluated, stats.Skipped, stats.Failed
	return run, nil
}

// processGroup takes one candidate's files from intake through a saved
// evaluation.
func (p *Pipeline) processGroup(ctx context.Context, mat jobMaterials, group intake.Group) error {
	cand, err := p.readGroup(ctx, group.Files)
	if err != nil {
		return err
	}

	id := identity.Extract(cand.CombinedText())
	res, err := p.resolver.Resolve(mat.job.Name, group.Files.CandidateName, id)
	if err != nil {
		return err
	}
	cand.Name = res.RecordName

	for role, src := range group.Files.Paths() {
		if err := p.recs.PlaceFile(mat.job.Name, res.RecordName, role, src); err != nil {
			return err
		}
	}

	ev, evalErr := p.evaluator.Evaluate(ctx, mat.job, cand, mat.insights, mat.rules)
	if err := p.recs.SaveEvaluation(mat.job.Name, res.RecordName, ev); err != nil {
		return err
	}
	return evalErr
}

// readGroup extracts the text of each file in a candidate group.
func (p *Pipeline) readGroup(ctx context.Context, files model.CandidateFiles) (model.Candidate, error) {
	cand := model.Candidate{Name: files.CandidateName}

	resume, err := p.reader.ReadText(ctx, files.ResumePath)
	if err != nil {
		return cand, eris.Wrapf(err, "pipeline: read resume for %s", files.CandidateName)
	}
	cand.ResumeText = resume

	if files.CoverLetterPath != "" {
		if text, err := p.reader.ReadText(ctx, files.CoverLetterPath); err == nil {
			cand.CoverLetter = text
		} else {
			zap.L().Warn("unreadable cover letter",
				zap.String("candidate", files.CandidateName), zap.Error(err))
		}
	}
	if files.ApplicationPath != "" {
		if text, err := p.reader.ReadText(ctx, files.ApplicationPath); err == nil {
			cand.Application = text
		} else {
			zap.L().Warn("unreadable application",
				zap.String("candidate", files.CandidateName), zap.Error(err))
		}
	}
	return cand, nil
}

// ReEvaluate re-scores existing candidates with the job's current insights
// and filter rules. Stale duplicate warnings are swept first. Candidates are
// visited in descending order of their current score. Rejected candidates
// are skipped unless explicitly named in only; a failure on one candidate
// does not stop the rest. Reports are regenerated once at the end.
func (p *Pipeline) ReEvaluate(ctx context.Context, jobName string, only []string) (*model.ReviewRun, error) {
	mat, err := p.loadJob(jobName)
	if err != nil {
		// Lost job context degrades the batch rather than aborting it: the
		// stored candidates still deserve fresh verdicts.
		zap.L().Warn("re-evaluating without job context",
			zap.String("job", jobName), zap.Error(err))
		mat = jobMaterials{job: model.JobContext{Name: jobName}}
	}

	if removed, err := p.recs.SweepStaleWarnings(jobName); err != nil {
		zap.L().Warn("stale warning sweep failed", zap.String("job", jobName), zap.Error(err))
	} else if removed > 0 {
		zap.L().Info("swept stale duplicate warnings",
			zap.String("job", jobName), zap.Int("removed", removed))
	}

	targets, err := p.reEvalTargets(jobName, only)
	if err != nil {
		return nil, err
	}

	run, err := p.ledger.CreateRun(ctx, jobName, model.TriggerReEvaluate)
	if err != nil {
		return nil, err
	}

	var stats model.RunStats
	for _, name := range targets {
		if err := ctx.Err(); err != nil {
			p.finish(ctx, run, stats, err)
			return run, err
		}
		if err := p.reEvaluateOne(ctx, mat, name); err != nil {
			zap.L().Error("re-evaluation failed",
				zap.String("candidate", name), zap.Error(err))
			stats.Failed++
			continue
		}
		stats.Evaluated++
	}

	if _, err := p.reports.Generate(jobName); err != nil {
		p.finish(ctx, run, stats, err)
		return run, err
	}

	p.finish(ctx, run, stats, nil)
	run.Status = model.RunStatusComplete
	run.Evaluated, run.Skipped, run.Failed = stats.Evaluated, stats.Skipped, stats.Failed
	return run, nil
}

// reEvalTargets picks and orders the candidates to re-score: highest current
// score first, so the most promising candidates get fresh verdicts earliest.
// Candidates with a record but no evaluation yet come last, lexically.
func (p *Pipeline) reEvalTargets(jobName string, only []string) ([]string, error) {
	evals, err := p.recs.Evaluations(jobName)
	if err != nil {
		return nil, err
	}
	sort.Slice(evals, func(i, j int) bool {
		if evals[i].OverallScore != evals[j].OverallScore {
			return evals[i].OverallScore > evals[j].OverallScore
		}
		return evals[i].CandidateName < evals[j].CandidateName
	})

	named := make(map[string]struct{}, len(only))
	for _, n := range only {
		named[n] = struct{}{}
	}
	include := func(name string) bool {
		if len(only) > 0 {
			_, ok := named[name]
			return ok
		}
		// Rejection is permanent; only an explicit request overrides it.
		return !p.recs.IsRejected(jobName, name)
	}

	seen := make(map[string]struct{}, len(evals))
	var targets []string
	for _, ev := range evals {
		seen[ev.CandidateName] = struct{}{}
		if include(ev.CandidateName) {
			targets = append(targets, ev.CandidateName)
		}
	}

	all, err := p.recs.List(jobName)
	if err != nil {
		return nil, err
	}
	for _, name := range all {
		if _, ok := seen[name]; ok {
			continue
		}
		if include(name) {
			targets = append(targets, name)
		}
	}
	return targets, nil
}

// reEvaluateOne re-reads a candidate's stored files and produces a fresh
// evaluation, retiring the old one to history.
func (p *Pipeline) reEvaluateOne(ctx context.Context, mat jobMaterials, candidateName string) error {
	resumePath := p.recs.FindFile(mat.job.Name, candidateName, model.RoleResume)
	if resumePath == "" {
		return eris.Errorf("pipeline: no resume on record for %s", candidateName)
	}

	files := model.CandidateFiles{
		CandidateName:   candidateName,
		ResumePath:      resumePath,
		CoverLetterPath: p.recs.FindFile(mat.job.Name, candidateName, model.RoleCoverLetter),
		ApplicationPath: p.recs.FindFile(mat.job.Name, candidateName, model.RoleApplication),
	}
	cand, err := p.readGroup(ctx, files)
	if err != nil {
		return err
	}
	cand.Name = candidateName

	ev, evalErr := p.evaluator.Evaluate(ctx, mat.job, cand, mat.insights, mat.rules)
	if err := p.recs.SaveEvaluation(mat.job.Name, candidateName, ev); err != nil {
		return err
	}
	return evalErr
}

// finish closes out a ledger entry, logging rather than failing when the
// ledger write itself goes wrong.
func (p *Pipeline) finish(ctx context.Context, run *model.ReviewRun, stats model.RunStats, cause error) {
	var err error
	if cause != nil {
		err = p.ledger.FailRun(ctx, run.ID, stats)
	} else {
		err = p.ledger.CompleteRun(ctx, run.ID, stats)
	}
	if err != nil {
		zap.L().Error("could not record run outcome",
			zap.String("run_id", run.ID), zap.Error(err))
	}
}
