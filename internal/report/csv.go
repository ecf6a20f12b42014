package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

var csvHeader = []string{
	"rank", "candidate", "score", "recommendation", "interview_priority",
	"strengths", "concerns", "rules_applied", "notes", "duplicate_warning", "rejected", "evaluated_at",
}

// WriteCSV writes ranking rows as a CSV file.
func WriteCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.CandidateName,
			strconv.Itoa(r.OverallScore),
			string(r.Recommendation),
			string(r.InterviewPriority),
			strings.Join(r.Strengths, "; "),
			strings.Join(r.Concerns, "; "),
			strings.Join(r.RulesApplied, "; "),
			r.Notes,
			strconv.FormatBool(r.DuplicateWarning),
			strconv.FormatBool(r.Rejected),
			r.EvaluatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return eris.Wrapf(err, "report: write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "report: flush %s", path)
	}
	return f.Close()
}
