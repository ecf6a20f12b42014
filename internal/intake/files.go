// Package intake scans the drop directory for candidate files, groups them by
// candidate, and resolves each group into a candidate record directory.
package intake

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/sells-group/screening-cli/internal/model"
)

// Extensions accepted from the intake directory.
var supportedExtensions = map[string]struct{}{
	".pdf": {},
	".txt": {},
	".md":  {},
}

// Role keywords recognized in file names, as prefix or suffix.
var roleAliases = map[string]model.FileRole{
	"resume":        model.RoleResume,
	"cv":            model.RoleResume,
	"cover":         model.RoleCoverLetter,
	"coverletter":   model.RoleCoverLetter,
	"cover_letter":  model.RoleCoverLetter,
	"application":   model.RoleApplication,
	"questionnaire": model.RoleApplication,
}

var nonNameRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName folds a raw candidate name into its canonical directory form:
// accents stripped, lowercased, runs of non-alphanumerics collapsed to a
// single underscore.
func NormalizeName(raw string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, raw)
	if err != nil {
		folded = raw
	}
	folded = strings.ToLower(folded)
	folded = nonNameRe.ReplaceAllString(folded, "_")
	return strings.Trim(folded, "_")
}

// ParseFileName splits an intake file name into its candidate name and role.
// The role keyword may lead ("resume_jane_doe.pdf") or trail
// ("jane_doe_cover_letter.pdf"); a file with no role keyword is treated as a
// resume named after the whole base name. ok is false when no candidate name
// remains after stripping the role.
func ParseFileName(fileName string) (name string, role model.FileRole, ok bool) {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	lower := strings.ToLower(base)

	// Longest aliases first so "cover_letter" wins over "cover".
	aliases := make([]string, 0, len(roleAliases))
	for a := range roleAliases {
		aliases = append(aliases, a)
	}
	sort.Slice(aliases, func(i, j int) bool { return len(aliases[i]) > len(aliases[j]) })

	for _, alias := range aliases {
		r := roleAliases[alias]
		if rest, found := strings.CutPrefix(lower, alias+"_"); found {
			if n := NormalizeName(rest); n != "" {
				return n, r, true
			}
		}
		if rest, found := strings.CutSuffix(lower, "_"+alias); found {
			if n := NormalizeName(rest); n != "" {
				return n, r, true
			}
		}
	}

	if n := NormalizeName(lower); n != "" {
		return n, model.RoleResume, true
	}
	return "", "", false
}

// Group is one candidate's intake files plus the files it displaced.
type Group struct {
	Files model.CandidateFiles

	// Displaced lists files that lost a role slot to a newer file.
	Displaced []string
}

// ScanResult is the outcome of one intake directory scan.
type ScanResult struct {
	Groups  []Group
	Skipped []SkippedFile
}

// SkippedFile records an intake file that could not be processed and why.
// Suggestion, when set, tells the operator how to fix the file.
type SkippedFile struct {
	Path       string
	Reason     string
	Suggestion string
}

// Scan reads the intake directory and groups candidate files by normalized
// candidate name. When two files claim the same role slot for one candidate,
// the newer file by modification time wins. Groups are returned in lexical
// candidate-name order.
func Scan(dir string, maxFileSize int64) (ScanResult, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return ScanResult{}, nil
	}
	if err != nil {
		return ScanResult{}, err
	}

	type slot struct {
		path  string
		mtime int64
	}
	groups := make(map[string]map[model.FileRole]slot)
	displaced := make(map[string][]string)
	var result ScanResult

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())

		ext := strings.ToLower(filepath.Ext(e.Name()))
		if _, ok := supportedExtensions[ext]; !ok {
			skip := SkippedFile{Path: path, Reason: "unsupported extension"}
			if name, _, ok := ParseFileName(e.Name()); ok {
				skip.Suggestion = "convert resume_" + name + " to .pdf, .txt, or .md"
			}
			result.Skipped = append(result.Skipped, skip)
			continue
		}

		info, err := e.Info()
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: "unreadable"})
			continue
		}
		if maxFileSize > 0 && info.Size() > maxFileSize {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: "exceeds size limit"})
			continue
		}
		if info.Size() == 0 {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: "empty file"})
			continue
		}

		name, role, ok := ParseFileName(e.Name())
		if !ok {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: "no candidate name"})
			continue
		}

		if groups[name] == nil {
			groups[name] = make(map[model.FileRole]slot)
		}
		prev, taken := groups[name][role]
		if taken {
			if info.ModTime().Unix() <= prev.mtime {
				displaced[name] = append(displaced[name], path)
				continue
			}
			displaced[name] = append(displaced[name], prev.path)
		}
		groups[name][role] = slot{path: path, mtime: info.ModTime().Unix()}
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		slots := groups[name]
		g := Group{
			Files: model.CandidateFiles{
				CandidateName:   name,
				ResumePath:      slots[model.RoleResume].path,
				CoverLetterPath: slots[model.RoleCoverLetter].path,
				ApplicationPath: slots[model.RoleApplication].path,
			},
			Displaced: displaced[name],
		}
		if g.Files.ResumePath == "" {
			zap.L().Warn("candidate group has no resume",
				zap.String("candidate", name))
		}
		result.Groups = append(result.Groups, g)
	}
	return result, nil
}
