package model

import "time"

// JobContext holds the description and guidance documents for a job.
type JobContext struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	IdealCandidate string    `json:"ideal_candidate,omitempty"`
	WarningFlags   string    `json:"warning_flags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Candidate holds the extracted materials for one applicant.
type Candidate struct {
	Name        string `json:"name"`
	ResumeText  string `json:"resume_text"`
	CoverLetter string `json:"cover_letter,omitempty"`
	Application string `json:"application,omitempty"`
}

// CombinedText concatenates all available candidate text for identifier
// extraction.
func (c Candidate) CombinedText() string {
	out := c.ResumeText
	if c.CoverLetter != "" {
		out += " " + c.CoverLetter
	}
	if c.Application != "" {
		out += " " + c.Application
	}
	return out
}

// FileRole identifies the slot a candidate file fills in its record.
type FileRole string

// Candidate file roles.
const (
	RoleResume      FileRole = "resume"
	RoleCoverLetter FileRole = "cover_letter"
	RoleApplication FileRole = "application"
)

// CandidateFiles maps intake files to their record slots for one candidate.
type CandidateFiles struct {
	CandidateName   string
	ResumePath      string
	CoverLetterPath string
	ApplicationPath string
}

// Paths returns the non-empty file paths keyed by role.
func (f CandidateFiles) Paths() map[FileRole]string {
	paths := make(map[FileRole]string, 3)
	if f.ResumePath != "" {
		paths[RoleResume] = f.ResumePath
	}
	if f.CoverLetterPath != "" {
		paths[RoleCoverLetter] = f.CoverLetterPath
	}
	if f.ApplicationPath != "" {
		paths[RoleApplication] = f.ApplicationPath
	}
	return paths
}
