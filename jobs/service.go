// Package jobs owns the render job lifecycle: persistent records, the
// bounded background worker pool, and retention of finished jobs.
package jobs

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"scenecast/logger"
	"scenecast/models"
)

// ErrCancelled is returned by pipeline stages when they observe a cancel
// request at a stage boundary.
var ErrCancelled = errors.New("job cancelled")

// MaxListLimit caps how many jobs a single list call returns.
const MaxListLimit = 100

// RunFunc executes one render pipeline and returns its completion payload.
type RunFunc func(ctx context.Context) (*models.RenderResult, error)

// Service is the job orchestrator. It is constructed once at process start
// and passed to its callers; Close drains the worker pool.
type Service struct {
	store      *Store
	maxWorkers int
	sem        chan struct{}
	wg         sync.WaitGroup
	active     atomic.Int64

	cleanupCancel context.CancelFunc
}

// NewService creates the orchestrator on top of an open store. maxWorkers
// bounds the number of renders in flight; excess submissions queue.
func NewService(store *Store, maxWorkers int) *Service {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Service{
		store:      store,
		maxWorkers: maxWorkers,
		sem:        make(chan struct{}, maxWorkers),
	}
}

// Close stops the retention sweep and waits for in-flight renders to finish.
func (s *Service) Close() {
	if s.cleanupCancel != nil {
		s.cleanupCancel()
	}
	s.wg.Wait()
}

// Create allocates a job ID and persists the initial pending record.
func (s *Service) Create(cfg *models.VideoConfig) (string, error) {
	now := time.Now().UTC()
	job := &models.Job{
		ID:          uuid.NewString(),
		Status:      models.JobPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Progress:    0,
		CurrentStep: "Queued",
		Config:      cfg,
	}
	if err := s.store.Put(job); err != nil {
		return "", err
	}
	logger.Infof("Created job %s", job.ID)
	return job.ID, nil
}

// Submit schedules the render on the worker pool and returns immediately.
// A job cancelled while still queued is skipped when its turn comes.
func (s *Service) Submit(jobID string, run RunFunc) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.sem <- struct{}{}
		defer func() { <-s.sem }()

		if s.IsCancelled(jobID) {
			logger.Infof("Job %s cancelled before processing started", jobID)
			return
		}

		s.active.Add(1)
		defer s.active.Add(-1)

		s.markProcessing(jobID)
		result, err := run(context.Background())
		switch {
		case errors.Is(err, ErrCancelled):
			logger.Infof("Job %s cancelled", jobID)
		case err != nil:
			s.Fail(jobID, err.Error())
		default:
			s.Complete(jobID, result)
		}
	}()
	logger.Infof("Job %s submitted for processing", jobID)
}

func (s *Service) markProcessing(jobID string) {
	err := s.store.Update(jobID, func(j *models.Job) error {
		j.Status = models.JobProcessing
		j.CurrentStep = "Starting video generation"
		j.UpdatedAt = time.Now().UTC()
		if j.StartedAt == nil {
			now := time.Now().UTC()
			j.StartedAt = &now
		}
		return nil
	})
	if err != nil {
		logger.Errorf("Failed to mark job %s processing: %v", jobID, err)
	}
}

// UpdateProgress records pipeline progress. Percent is clamped to [0,100];
// monotonicity is not enforced.
func (s *Service) UpdateProgress(jobID string, percent int, step string) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	err := s.store.Update(jobID, func(j *models.Job) error {
		j.Progress = percent
		if step != "" {
			j.CurrentStep = step
		}
		j.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		logger.Errorf("Failed to update progress for job %s: %v", jobID, err)
		return
	}
	if step != "" {
		logger.Infof("Job %s: %s", jobID, step)
	}
}

// Complete marks the job finished and records its wall-clock duration when a
// start time exists.
func (s *Service) Complete(jobID string, result *models.RenderResult) {
	err := s.store.Update(jobID, func(j *models.Job) error {
		now := time.Now().UTC()
		j.Status = models.JobCompleted
		j.CompletedAt = &now
		j.UpdatedAt = now
		j.Progress = 100
		j.CurrentStep = "Completed"
		j.Result = result
		if j.StartedAt != nil {
			j.DurationSeconds = now.Sub(*j.StartedAt).Seconds()
		}
		return nil
	})
	if err != nil {
		logger.Errorf("Failed to complete job %s: %v", jobID, err)
		return
	}
	logger.Infof("Job %s completed successfully", jobID)
}

// Fail marks the job failed with a stable error string.
func (s *Service) Fail(jobID string, errText string) {
	err := s.store.Update(jobID, func(j *models.Job) error {
		now := time.Now().UTC()
		j.Status = models.JobFailed
		j.CompletedAt = &now
		j.UpdatedAt = now
		j.Error = errText
		j.CurrentStep = "Failed"
		return nil
	})
	if err != nil {
		logger.Errorf("Failed to mark job %s failed: %v", jobID, err)
		return
	}
	logger.Errorf("Job %s failed: %s", jobID, errText)
}

// Cancel requests cancellation. Only pending or processing jobs can be
// cancelled; terminal jobs return false and stay unchanged. In-flight
// external processes are not preempted; the pipeline observes the new
// status at its next stage boundary.
func (s *Service) Cancel(jobID string) bool {
	cancelled := false
	err := s.store.Update(jobID, func(j *models.Job) error {
		if j.Status != models.JobPending && j.Status != models.JobProcessing {
			return nil
		}
		now := time.Now().UTC()
		j.Status = models.JobCancelled
		j.CompletedAt = &now
		j.UpdatedAt = now
		j.CurrentStep = "Cancelled"
		cancelled = true
		return nil
	})
	if err != nil {
		return false
	}
	if cancelled {
		logger.Infof("Job %s cancelled", jobID)
	}
	return cancelled
}

// IsCancelled reports whether the job has been cancelled. Used by the
// pipeline at stage boundaries.
func (s *Service) IsCancelled(jobID string) bool {
	job, err := s.store.Get(jobID)
	if err != nil {
		return false
	}
	return job.Status == models.JobCancelled
}

// Get returns the job's status view (configuration stripped), or ErrNotFound.
func (s *Service) Get(jobID string) (*models.Job, error) {
	job, err := s.store.Get(jobID)
	if err != nil {
		return nil, err
	}
	view := job.StatusView()
	return &view, nil
}

// List returns jobs newest first, optionally filtered by status, capped at
// MaxListLimit. Result payloads and configs are stripped from list entries.
func (s *Service) List(status models.JobStatus, limit int) ([]models.Job, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	all, err := s.store.All()
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	out := make([]models.Job, 0, limit)
	for _, job := range all {
		if status != "" && job.Status != status {
			continue
		}
		view := job.StatusView()
		view.Result = nil
		out = append(out, view)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Statistics aggregates counts per status and the mean duration of completed
// jobs.
func (s *Service) Statistics() (*models.Statistics, error) {
	all, err := s.store.All()
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		TotalJobs: len(all),
		StatusCounts: map[models.JobStatus]int{
			models.JobPending:    0,
			models.JobProcessing: 0,
			models.JobCompleted:  0,
			models.JobFailed:     0,
			models.JobCancelled:  0,
		},
		MaxWorkers:    s.maxWorkers,
		ActiveWorkers: int(s.active.Load()),
	}

	var durations []float64
	for _, job := range all {
		if job.Status.Valid() {
			stats.StatusCounts[job.Status]++
		}
		if job.Status == models.JobCompleted && job.DurationSeconds > 0 {
			durations = append(durations, job.DurationSeconds)
		}
	}
	if len(durations) > 0 {
		sum := 0.0
		for _, d := range durations {
			sum += d
		}
		stats.AverageDurationSeconds = sum / float64(len(durations))
	}
	return stats, nil
}

// RecoverOrphans fails jobs left pending or processing by a previous process
// crash. Called once at startup before the pool accepts work.
func (s *Service) RecoverOrphans() error {
	all, err := s.store.All()
	if err != nil {
		return err
	}
	for _, job := range all {
		if job.Status == models.JobPending || job.Status == models.JobProcessing {
			s.Fail(job.ID, "server restarted while job was in progress")
		}
	}
	return nil
}
