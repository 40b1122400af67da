// Package transcribe runs speech-to-text per scene and reassembles the
// results in scene order regardless of completion order.
package transcribe

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"scenecast/logger"
	"scenecast/models"
)

// Orchestrator fans one transcription task out per scene with audio, bounded
// by Workers. A failed task is recorded on its own scene only; the other
// scenes proceed unaffected.
type Orchestrator struct {
	Workers     int
	Timeout     time.Duration
	Enabled     bool
	Transcriber Transcriber
}

// NewOrchestrator wires the orchestrator to a transcriber backend.
func NewOrchestrator(workers int, timeout time.Duration, enabled bool, t Transcriber) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{Workers: workers, Timeout: timeout, Enabled: enabled, Transcriber: t}
}

type task struct {
	sceneIndex int
	audioURL   string
}

// TranscribeScenes transcribes the first audio clip of every scene present in
// timings. Returns an empty result set when the configuration has no subtitle
// element or transcription is disabled; that is a skip, not an error. The
// returned slice is ordered exactly like timings, one entry per scene.
func (o *Orchestrator) TranscribeScenes(
	ctx context.Context,
	cfg *models.VideoConfig,
	probes []models.AudioProbe,
	timings []models.SceneTiming,
	workDir string,
) []models.TranscriptionResult {
	if cfg.Subtitles() == nil {
		logger.Info("No subtitle element found in config, skipping transcription")
		return nil
	}
	if !o.Enabled {
		logger.Info("Subtitles disabled in settings, skipping transcription")
		return nil
	}

	// First audio per scene drives that scene's captions.
	sceneAudio := make(map[int]string)
	for _, p := range probes {
		if _, ok := sceneAudio[p.SceneIndex]; !ok {
			sceneAudio[p.SceneIndex] = p.URL
		}
	}

	var tasks []task
	for _, timing := range timings {
		if url, ok := sceneAudio[timing.SceneIndex]; ok {
			tasks = append(tasks, task{sceneIndex: timing.SceneIndex, audioURL: url})
		}
	}
	if len(tasks) == 0 {
		logger.Warn("No audio files found for transcription")
		return nil
	}

	logger.Infof("Transcribing %d scenes concurrently (max %d workers)...", len(tasks), o.Workers)

	var (
		mu        sync.Mutex
		bySceneID = make(map[int]models.TranscriptionResult, len(tasks))
		completed atomic.Int64
		wg        sync.WaitGroup
		sem       = make(chan struct{}, o.Workers)
	)

	for _, t := range tasks {
		wg.Add(1)
		go func(t task) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result := o.transcribeScene(ctx, t, workDir)

			n := completed.Add(1)
			if result.Success {
				logger.Infof("[%d/%d] Scene %d transcribed", n, len(tasks), t.sceneIndex)
			} else {
				logger.Errorf("[%d/%d] Scene %d failed: %s", n, len(tasks), t.sceneIndex, result.Error)
			}

			mu.Lock()
			bySceneID[t.sceneIndex] = result
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	// Reassemble strictly in timing order; scenes the pool never produced a
	// result for become failed entries rather than holes.
	results := make([]models.TranscriptionResult, 0, len(timings))
	for _, timing := range timings {
		if r, ok := bySceneID[timing.SceneIndex]; ok {
			results = append(results, r)
		} else {
			results = append(results, models.TranscriptionResult{
				SceneIndex: timing.SceneIndex,
				Success:    false,
				Error:      "no audio found for scene",
			})
		}
	}

	logger.Infof("Transcription complete: %d scenes processed", len(results))
	return results
}

func (o *Orchestrator) transcribeScene(ctx context.Context, t task, workDir string) models.TranscriptionResult {
	taskCtx, cancel := context.WithTimeout(ctx, o.Timeout)
	defer cancel()

	text, words, err := o.Transcriber.Transcribe(taskCtx, t.audioURL, workDir)
	if err != nil {
		return models.TranscriptionResult{
			SceneIndex: t.sceneIndex,
			Success:    false,
			Error:      fmt.Sprintf("transcription failed: %v", err),
		}
	}
	return models.TranscriptionResult{
		SceneIndex: t.sceneIndex,
		Text:       text,
		Success:    true,
		Words:      words,
	}
}
