package model

import "time"

// RunStatus is the lifecycle state of a review run.
type RunStatus string

// Review run statuses.
const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// RunTrigger identifies what started a review run.
type RunTrigger string

// Review run triggers.
const (
	TriggerProcess    RunTrigger = "process"
	TriggerReEvaluate RunTrigger = "re-evaluate"
)

// ReviewRun is one ledger entry covering a batch of candidate evaluations.
type ReviewRun struct {
	ID         string     `json:"id"`
	JobName    string     `json:"job_name"`
	Trigger    RunTrigger `json:"trigger"`
	Status     RunStatus  `json:"status"`
	Evaluated  int        `json:"evaluated"`
	Skipped    int        `json:"skipped"`
	Failed     int        `json:"failed"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// RunStats summarizes the outcome of a completed run.
type RunStats struct {
	Evaluated int `json:"evaluated"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
