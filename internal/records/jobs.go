package records

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/screening-cli/internal/model"
)

// Job context document base names. Each may carry a .txt or .md extension.
const (
	JobDescriptionDoc = "job_description"
	IdealCandidateDoc = "ideal_candidate"
	WarningFlagsDoc   = "warning_flags"
	FilterRulesFile   = "screening_filters.yaml"
)

// ListJobs returns every job with a record directory, sorted lexically.
func (s *Store) ListJobs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.data.BaseDir, "jobs"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "records: list jobs")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SaveJobContext writes a job's guidance documents. Empty documents are not
// written.
func (s *Store) SaveJobContext(job model.JobContext) error {
	dir := s.data.JobDir(job.Name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}
	docs := map[string]string{
		JobDescriptionDoc: job.Description,
		IdealCandidateDoc: job.IdealCandidate,
		WarningFlagsDoc:   job.WarningFlags,
	}
	for name, body := range docs {
		if body == "" {
			continue
		}
		path := filepath.Join(dir, name+".txt")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return eris.Wrapf(err, "records: write %s", path)
		}
	}
	return nil
}

// LoadJobContext reads a job's guidance documents. The job description is
// required; the other documents are optional.
func (s *Store) LoadJobContext(jobName string) (model.JobContext, error) {
	dir := s.data.JobDir(jobName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return model.JobContext{}, eris.Errorf("records: job %s not found", jobName)
	}

	desc := readJobDoc(dir, JobDescriptionDoc)
	if desc == "" {
		return model.JobContext{}, eris.Errorf("records: job %s has no %s file", jobName, JobDescriptionDoc)
	}

	return model.JobContext{
		Name:           jobName,
		Description:    desc,
		IdealCandidate: readJobDoc(dir, IdealCandidateDoc),
		WarningFlags:   readJobDoc(dir, WarningFlagsDoc),
		CreatedAt:      info.ModTime(),
	}, nil
}

// readJobDoc reads a guidance document by base name, trying the known text
// extensions.
func readJobDoc(dir, base string) string {
	for _, ext := range []string{".txt", ".md"} {
		data, err := os.ReadFile(filepath.Join(dir, base+ext))
		if err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return ""
}

// FilterRulesPath returns the path of a job's screening filter rules file.
// The canonical name is screening_filters.yaml; a .json file is accepted when
// no .yaml exists. The file is optional; callers treat a missing file as no
// rules.
func (s *Store) FilterRulesPath(jobName string) string {
	yamlPath := filepath.Join(s.data.JobDir(jobName), FilterRulesFile)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}
	jsonPath := strings.TrimSuffix(yamlPath, ".yaml") + ".json"
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath
	}
	return yamlPath
}

// SaveInsights persists a job's learned insights.
func (s *Store) SaveInsights(insights model.JobInsights) error {
	dir := s.data.JobDir(insights.JobName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}
	return writeJSON(filepath.Join(dir, InsightsFile), insights)
}

// LoadInsights reads a job's learned insights, or nil when none exist yet.
func (s *Store) LoadInsights(jobName string) (*model.JobInsights, error) {
	var insights model.JobInsights
	path := filepath.Join(s.data.JobDir(jobName), InsightsFile)
	if err := readJSON(path, &insights); err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			return nil, nil
		}
		return nil, err
	}
	return &insights, nil
}

// SaveFeedbackSummary persists the aggregated feedback summary for a job.
func (s *Store) SaveFeedbackSummary(summary model.FeedbackSummary) error {
	dir := s.data.JobDir(summary.JobName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}
	summary.LastUpdated = time.Now().UTC()
	return writeJSON(filepath.Join(dir, FeedbackSummary), summary)
}

// LoadFeedbackSummary reads a job's aggregated feedback summary, or nil when
// none exists.
func (s *Store) LoadFeedbackSummary(jobName string) (*model.FeedbackSummary, error) {
	var summary model.FeedbackSummary
	path := filepath.Join(s.data.JobDir(jobName), FeedbackSummary)
	if err := readJSON(path, &summary); err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}
