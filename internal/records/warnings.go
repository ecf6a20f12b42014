package records

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screening-cli/internal/identity"
)

const warningSharesLine = "This profile shares identifiers with: "

// WriteDuplicateWarning drops a DUPLICATE_WARNING.txt into a candidate's
// record directory naming the record it shares identifiers with.
func (s *Store) WriteDuplicateWarning(jobName, candidateName, otherName string, shared []identity.SharedCategory) error {
	dir := s.Dir(jobName, candidateName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "records: create %s", dir)
	}

	var b strings.Builder
	b.WriteString("POSSIBLE DUPLICATE CANDIDATE\n\n")
	b.WriteString(warningSharesLine + otherName + "\n\n")
	b.WriteString("Shared identifiers:\n")
	for _, cat := range shared {
		fmt.Fprintf(&b, "  %s: %s\n", cat.Category, strings.Join(cat.Values, ", "))
	}
	b.WriteString("\nReview both records before relying on either evaluation.\n")
	fmt.Fprintf(&b, "Flagged at: %s\n", time.Now().UTC().Format(time.RFC3339))

	path := filepath.Join(dir, WarningFile)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return eris.Wrapf(err, "records: write %s", path)
	}
	return nil
}

// HasDuplicateWarning reports whether a candidate record carries a duplicate
// warning.
func (s *Store) HasDuplicateWarning(jobName, candidateName string) bool {
	_, err := os.Stat(filepath.Join(s.Dir(jobName, candidateName), WarningFile))
	return err == nil
}

// WarningCounterpart parses the counterpart name out of a candidate's
// duplicate warning. Returns "" when there is no warning or it cannot be
// parsed.
func (s *Store) WarningCounterpart(jobName, candidateName string) string {
	data, err := os.ReadFile(filepath.Join(s.Dir(jobName, candidateName), WarningFile))
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		if rest, ok := strings.CutPrefix(line, warningSharesLine); ok {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}

// SweepStaleWarnings removes duplicate warnings whose counterpart record no
// longer exists, returning the number removed. Warnings naming a live record
// are left in place.
func (s *Store) SweepStaleWarnings(jobName string) (int, error) {
	names, err := s.List(jobName)
	if err != nil {
		return 0, err
	}
	exists := make(map[string]struct{}, len(names))
	for _, n := range names {
		exists[n] = struct{}{}
	}

	removed := 0
	for _, name := range names {
		if !s.HasDuplicateWarning(jobName, name) {
			continue
		}
		other := s.WarningCounterpart(jobName, name)
		if other == "" {
			continue
		}
		if _, ok := exists[other]; ok {
			continue
		}
		path := filepath.Join(s.Dir(jobName, name), WarningFile)
		if err := os.Remove(path); err != nil {
			zap.L().Warn("could not remove stale duplicate warning",
				zap.String("path", path), zap.Error(err))
			continue
		}
		zap.L().Info("removed stale duplicate warning",
			zap.String("job", jobName),
			zap.String("candidate", name),
			zap.String("counterpart", other),
		)
		removed++
	}
	return removed, nil
}
