// Package records owns the on-disk candidate record layout: identity
// metadata, the current evaluation plus its append-only history, feedback,
// and duplicate-warning artifacts.
package records

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/config"
	"github.com/sells-group/screening-cli/internal/identity"
	"github.com/sells-group/screening-cli/internal/model"
)

// Record file names inside a candidate directory.
const (
	MetaFile        = "candidate_meta.json"
	EvaluationFile  = "evaluation.json"
	HistoryFile     = "evaluation_history.json"
	FeedbackFile    = "feedback.json"
	WarningFile     = "DUPLICATE_WARNING.txt"
	InsightsFile    = "insights.json"
	FeedbackSummary = "feedback_summary.json"
)

// Meta is the sidecar metadata persisted per candidate: identity sets plus
// the rejection flag.
type Meta struct {
	identity.Identity

	Rejected           bool   `json:"rejected,omitempty"`
	RejectionReason    string `json:"rejection_reason,omitempty"`
	RejectionTimestamp string `json:"rejection_timestamp,omitempty"`
}

// Store reads and writes candidate records under the configured data layout.
type Store struct {
	data config.DataConfig
}

// NewStore creates a record store for the given data layout.
func NewStore(data config.DataConfig) *Store {
	return &Store{data: data}
}

// Dir returns the record directory for a candidate.
func (s *Store) Dir(jobName, candidateName string) string {
	return s.data.CandidateDir(jobName, candidateName)
}

// List returns the candidate names recorded for a job, sorted lexically.
func (s *Store) List(jobName string) ([]string, error) {
	entries, err := os.ReadDir(s.data.CandidatesDir(jobName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "records: list candidates for %s", jobName)
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

// LoadMeta reads a candidate's metadata. A missing file yields an empty Meta.
func (s *Store) LoadMeta(jobName, candidateName string) (Meta, error) {
	var meta Meta
	path := filepath.Join(s.Dir(jobName, candidateName), MetaFile)
	if err := readJSON(path, &meta); err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			return Meta{}, nil
		}
		return Meta{}, err
	}
	return meta, nil
}

// SaveMeta writes a candidate's metadata, creating the record directory if
// needed.
func (s *Store) SaveMeta(jobName, candidateName string, meta Meta) error {
	dir := s.Dir(jobName, candidateName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}
	return writeJSON(filepath.Join(dir, MetaFile), meta)
}

// Identities loads the identity record of every candidate in a job. Records
// with unreadable metadata are skipped.
func (s *Store) Identities(jobName string) ([]identity.Record, error) {
	names, err := s.List(jobName)
	if err != nil {
		return nil, err
	}
	var out []identity.Record
	for _, name := range names {
		var meta Meta
		if err := readJSON(filepath.Join(s.Dir(jobName, name), MetaFile), &meta); err != nil {
			continue
		}
		out = append(out, identity.Record{Name: name, Identity: meta.Identity})
	}
	return out, nil
}

// Reject marks a candidate as permanently rejected. Rejected candidates are
// excluded from batch re-evaluation unless explicitly named.
func (s *Store) Reject(jobName, candidateName, reason string) error {
	meta, err := s.LoadMeta(jobName, candidateName)
	if err != nil {
		return err
	}
	meta.Rejected = true
	meta.RejectionReason = reason
	meta.RejectionTimestamp = time.Now().UTC().Format(time.RFC3339)
	return s.SaveMeta(jobName, candidateName, meta)
}

// IsRejected reports whether a candidate carries the rejection flag.
func (s *Store) IsRejected(jobName, candidateName string) bool {
	meta, err := s.LoadMeta(jobName, candidateName)
	if err != nil {
		return false
	}
	return meta.Rejected
}

// CurrentEvaluation loads a candidate's current evaluation, or nil if none
// has been stored.
func (s *Store) CurrentEvaluation(jobName, candidateName string) (*model.Evaluation, error) {
	var ev model.Evaluation
	path := filepath.Join(s.Dir(jobName, candidateName), EvaluationFile)
	if err := readJSON(path, &ev); err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

// History loads a candidate's superseded evaluations, oldest first.
func (s *Store) History(jobName, candidateName string) ([]model.Evaluation, error) {
	var history []model.Evaluation
	path := filepath.Join(s.Dir(jobName, candidateName), HistoryFile)
	if err := readJSON(path, &history); err != nil {
		if os.IsNotExist(eris.Cause(err)) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

// SaveEvaluation stores a new current evaluation. Any existing current
// evaluation is appended to the history first; history entries are never
// mutated.
func (s *Store) SaveEvaluation(jobName, candidateName string, ev model.Evaluation) error {
	dir := s.Dir(jobName, candidateName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}

	current, err := s.CurrentEvaluation(jobName, candidateName)
	if err != nil {
		return err
	}
	if current != nil {
		history, err := s.History(jobName, candidateName)
		if err != nil {
			// A corrupt history file should not block the new evaluation;
			// start a fresh history and keep the superseded record.
			zap.L().Warn("resetting unreadable evaluation history",
				zap.String("job", jobName),
				zap.String("candidate", candidateName),
				zap.Error(err),
			)
			history = nil
		}
		history = append(history, *current)
		if err := writeJSON(filepath.Join(dir, HistoryFile), history); err != nil {
			return err
		}
	}

	return writeJSON(filepath.Join(dir, EvaluationFile), ev)
}

// Evaluations loads the current evaluation of every candidate in a job.
// Unreadable evaluations are logged and skipped.
func (s *Store) Evaluations(jobName string) ([]model.Evaluation, error) {
	names, err := s.List(jobName)
	if err != nil {
		return nil, err
	}
	var out []model.Evaluation
	for _, name := range names {
		ev, err := s.CurrentEvaluation(jobName, name)
		if err != nil {
			zap.L().Warn("skipping unreadable evaluation",
				zap.String("job", jobName),
				zap.String("candidate", name),
				zap.Error(err),
			)
			continue
		}
		if ev != nil {
			out = append(out, *ev)
		}
	}
	return out, nil
}

// SaveFeedback stores the latest feedback record for a candidate.
func (s *Store) SaveFeedback(jobName, candidateName string, rec model.FeedbackRecord) error {
	dir := s.Dir(jobName, candidateName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}
	return writeJSON(filepath.Join(dir, FeedbackFile), rec)
}

// Feedback loads every candidate's feedback record for a job. Candidates
// without feedback are omitted.
func (s *Store) Feedback(jobName string) ([]model.FeedbackRecord, error) {
	names, err := s.List(jobName)
	if err != nil {
		return nil, err
	}
	var out []model.FeedbackRecord
	for _, name := range names {
		var rec model.FeedbackRecord
		path := filepath.Join(s.Dir(jobName, name), FeedbackFile)
		if err := readJSON(path, &rec); err != nil {
			if !os.IsNotExist(eris.Cause(err)) {
				zap.L().Warn("skipping unreadable feedback",
					zap.String("job", jobName),
					zap.String("candidate", name),
					zap.Error(err),
				)
			}
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// PlaceFile moves an intake file into a candidate directory under its role
// name, overwriting the slot if already filled. The original extension is
// kept.
func (s *Store) PlaceFile(jobName, candidateName string, role model.FileRole, srcPath string) error {
	dir := s.Dir(jobName, candidateName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}
	dest := filepath.Join(dir, string(role)+filepath.Ext(srcPath))
	if err := os.Rename(srcPath, dest); err != nil {
		// Rename fails across filesystems; fall back to copy+remove.
		if err := copyFile(srcPath, dest); err != nil {
			return eris.Wrapf(err, "records: place %s for %s", role, candidateName)
		}
		if err := os.Remove(srcPath); err != nil {
			zap.L().Warn("could not remove intake file after copy",
				zap.String("path", srcPath), zap.Error(err))
		}
	}
	return nil
}

// FindFile locates the file filling a role slot in a candidate directory,
// regardless of extension. Returns "" when the slot is empty.
func (s *Store) FindFile(jobName, candidateName string, role model.FileRole) string {
	dir := s.Dir(jobName, candidateName)
	for _, ext := range []string{".pdf", ".txt", ".md"} {
		path := filepath.Join(dir, string(role)+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "records: read %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return eris.Wrapf(err, "records: unmarshal %s", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "records: marshal %s", path)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return eris.Wrapf(err, "records: write %s", path)
	}
	return nil
}
