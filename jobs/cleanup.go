package jobs

import (
	"context"
	"time"

	"scenecast/logger"
	"scenecast/models"
)

// StartCleanup launches the retention sweep: every interval it deletes
// terminal jobs whose completion is older than ttl. The goroutine stops when
// the service closes.
func (s *Service) StartCleanup(ttl, interval time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	s.cleanupCancel = cancel

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		logger.Infof("Job cleanup routine started (ttl %s, every %s)", ttl, interval)
		for {
			select {
			case <-ctx.Done():
				logger.Info("Job cleanup routine stopped")
				return
			case <-ticker.C:
				s.sweep(ttl)
			}
		}
	}()
}

func (s *Service) sweep(ttl time.Duration) {
	all, err := s.store.All()
	if err != nil {
		logger.Errorf("Cleanup sweep failed to list jobs: %v", err)
		return
	}

	cutoff := time.Now().UTC().Add(-ttl)
	removed := 0
	for _, job := range all {
		if !expireCandidate(job, cutoff) {
			continue
		}
		if err := s.store.Delete(job.ID); err != nil {
			logger.Errorf("Failed to delete expired job %s: %v", job.ID, err)
			continue
		}
		removed++
	}
	if removed > 0 {
		logger.Infof("Cleanup removed %d expired jobs", removed)
	}
}

// expireCandidate reports whether a terminal job finished before cutoff.
func expireCandidate(job *models.Job, cutoff time.Time) bool {
	if !job.Status.Terminal() {
		return false
	}
	finished := job.UpdatedAt
	if job.CompletedAt != nil {
		finished = *job.CompletedAt
	}
	return finished.Before(cutoff)
}
