// Package timeline measures audio clip durations and derives the absolute
// scene timeline a render is laid out on.
package timeline

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"scenecast/ffmpeg"
	"scenecast/logger"
	"scenecast/models"
)

// FallbackDuration is substituted when a single probe fails or times out.
// Per-source failures never abort the batch.
const FallbackDuration = 10.0

// ProbeFunc measures one source's duration. Swappable in tests.
type ProbeFunc func(ctx context.Context, url string) (float64, error)

// Analyzer probes audio durations concurrently with a bounded worker count.
type Analyzer struct {
	Workers int
	Timeout time.Duration
	Probe   ProbeFunc
}

// NewAnalyzer returns an analyzer backed by ffprobe.
func NewAnalyzer(workers int, timeout time.Duration) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{Workers: workers, Timeout: timeout, Probe: ffmpeg.ProbeDuration}
}

// Analyze probes every audio source in the configuration and returns the
// probes sorted by scene index together with the summed duration (without
// the render buffer). A configuration without any audio source cannot
// produce a timeline and is a hard configuration error.
func (a *Analyzer) Analyze(ctx context.Context, cfg *models.VideoConfig) ([]models.AudioProbe, float64, error) {
	sources := cfg.AudioSources()
	if len(sources) == 0 {
		return nil, 0, &models.ConfigurationError{Reason: "no audio files found in configuration"}
	}

	logger.Infof("Analyzing %d audio files concurrently (max %d workers)...", len(sources), a.Workers)

	probes := make([]models.AudioProbe, len(sources))
	var completed atomic.Int64
	sem := make(chan struct{}, a.Workers)
	var wg sync.WaitGroup

	for i, src := range sources {
		wg.Add(1)
		go func(slot int, src models.SceneSource) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			probeCtx, cancel := context.WithTimeout(ctx, a.Timeout)
			defer cancel()

			// Share links are resolved once here; the probe record carries
			// the resolved URL so transcription and command synthesis reuse it.
			url := ffmpeg.ResolveURL(src.URL)
			duration, err := a.Probe(probeCtx, url)
			if err != nil {
				logger.Warnf("Could not get duration for %s, using default: %v", url, err)
				duration = FallbackDuration
			}
			probes[slot] = models.AudioProbe{SceneIndex: src.SceneIndex, URL: url, Duration: duration}

			n := completed.Add(1)
			logger.Infof("Audio %d/%d: %.1fs", n, len(sources), duration)
		}(i, src)
	}
	wg.Wait()

	// Completion order is nondeterministic; downstream consumers rely on
	// ascending scene order.
	sortProbes(probes)

	total := 0.0
	for _, p := range probes {
		total += p.Duration
	}
	logger.Infof("Audio analysis complete: %d files, total %.1fs", len(probes), total)
	return probes, total, nil
}

// CalculateSceneTimings derives the contiguous scene windows from probes.
func CalculateSceneTimings(probes []models.AudioProbe) []models.SceneTiming {
	timings := models.CalculateSceneTimings(probes)
	for _, t := range timings {
		logger.Debugf("Scene %d: %.2fs - %.2fs", t.SceneIndex, t.Start, t.End)
	}
	return timings
}

func sortProbes(probes []models.AudioProbe) {
	// Stable insertion keeps same-scene probes in source order.
	for i := 1; i < len(probes); i++ {
		for j := i; j > 0 && probes[j-1].SceneIndex > probes[j].SceneIndex; j-- {
			probes[j-1], probes[j] = probes[j], probes[j-1]
		}
	}
}
