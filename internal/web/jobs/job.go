package jobs

import (
	"time"

	"github.com/buemura/willie/pkg/types"
)

// JobStatus represents the current state of a job.
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// Mode selects what a job does to its path.
type Mode string

const (
	ModeScan  Mode = "scan"
	ModeScrub Mode = "scrub"
)

// ParseMode validates a mode string; "" means scan.
func ParseMode(raw string) (Mode, bool) {
	switch Mode(raw) {
	case "", ModeScan:
		return ModeScan, true
	case ModeScrub:
		return ModeScrub, true
	}
	return "", false
}

// JobProgress tracks scrub rounds while a job runs.
type JobProgress struct {
	Iterations   int `json:"iterations"`
	FixesApplied int `json:"fixes_applied"`
}

// ScrubOutcome is the terminal state of a scrub job.
type ScrubOutcome struct {
	State      string `json:"state"`
	Iterations int    `json:"iterations"`
}

// Job represents an async scan or scrub.
type Job struct {
	ID            string                 `json:"id"`
	Mode          Mode                   `json:"mode"`
	Path          string                 `json:"path"`
	MaxIterations int                    `json:"max_iterations,omitempty"`
	Status        JobStatus              `json:"status"`
	Results       []types.AnalysisResult `json:"-"`
	Report        *types.Report          `json:"report,omitempty"`
	Scrub         *ScrubOutcome          `json:"scrub,omitempty"`
	Error         string                 `json:"error,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	StartedAt     time.Time              `json:"started_at,omitempty"`
	CompletedAt   time.Time              `json:"completed_at,omitempty"`
	Progress      JobProgress            `json:"progress"`
}

// IssueCount returns the total number of issues across all results.
func (j *Job) IssueCount() int {
	n := 0
	for _, r := range j.Results {
		n += r.IssueCount()
	}
	return n
}
