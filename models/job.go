package models

import "time"

// JobStatus is the lifecycle state of a render job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
	JobCancelled  JobStatus = "cancelled"
)

// Terminal reports whether the status is a sink state.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobFailed || s == JobCancelled
}

// Valid reports whether s is a known status value.
func (s JobStatus) Valid() bool {
	switch s {
	case JobPending, JobProcessing, JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// Job is the persisted record for one tracked render. The configuration copy
// is immutable after creation; only status fields change afterwards.
type Job struct {
	ID              string        `json:"job_id"`
	Status          JobStatus     `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	Progress        int           `json:"progress"`
	CurrentStep     string        `json:"current_step"`
	Error           string        `json:"error,omitempty"`
	Result          *RenderResult `json:"result,omitempty"`
	DurationSeconds float64       `json:"duration_seconds,omitempty"`
	Config          *VideoConfig  `json:"config,omitempty"`
}

// StatusView returns a copy stripped of the configuration payload, suitable
// for status and list responses.
func (j *Job) StatusView() Job {
	view := *j
	view.Config = nil
	return view
}
