// Package render drives a single job through the full pipeline: audio
// analysis, transcription, caption generation, command synthesis and the
// ffmpeg run itself.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"scenecast/delivery"
	"scenecast/ffmpeg"
	"scenecast/jobs"
	"scenecast/logger"
	"scenecast/models"
	"scenecast/subtitle"
	"scenecast/timeline"
	"scenecast/transcribe"
)

// Pipeline holds the stage services shared by every render. Cancellation is
// cooperative: the job's status is checked between stages, never mid-stage,
// so an ffmpeg or whisper process that already started runs to its own
// timeout.
type Pipeline struct {
	Jobs        *jobs.Service
	Analyzer    *timeline.Analyzer
	Transcriber *transcribe.Orchestrator

	Encode        ffmpeg.EncodeSettings
	FFmpegTimeout time.Duration
	OutputDir     string

	DeliveryBackend string
	DeliveryAccess  map[string]string
}

// Run executes the pipeline for one job and returns the completion payload.
// It reports progress through the job service as stages finish.
func (p *Pipeline) Run(ctx context.Context, jobID string, cfg *models.VideoConfig) (*models.RenderResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Stage 1: probe every audio clip and derive the timeline.
	p.Jobs.UpdateProgress(jobID, 5, "Analyzing audio durations")
	probes, totalDuration, err := p.Analyzer.Analyze(ctx, cfg)
	if err != nil {
		return nil, err
	}
	timings := timeline.CalculateSceneTimings(probes)

	if p.Jobs.IsCancelled(jobID) {
		return nil, jobs.ErrCancelled
	}

	workDir, err := os.MkdirTemp("", "scenecast-*")
	if err != nil {
		return nil, fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	// Stage 2: speech to text, one task per scene.
	p.Jobs.UpdateProgress(jobID, 25, "Transcribing audio")
	results := p.Transcriber.TranscribeScenes(ctx, cfg, probes, timings, workDir)

	if p.Jobs.IsCancelled(jobID) {
		return nil, jobs.ErrCancelled
	}

	// Stage 3: caption track. Requested captions that cannot be produced
	// fail the render; a config without captions skips this stage entirely.
	subtitlePath := ""
	if len(results) > 0 {
		sub := cfg.Subtitles()
		style := sub.Settings
		if issues := subtitle.ValidateStyle(style); len(issues) > 0 {
			for _, issue := range issues {
				logger.Warnf("Subtitle style: %s", issue)
			}
		}
		content, err := subtitle.BuildASS(results, timings, style)
		if err != nil {
			return nil, err
		}
		subtitlePath, err = subtitle.WriteFile(content, workDir)
		if err != nil {
			return nil, err
		}
	}

	if p.Jobs.IsCancelled(jobID) {
		return nil, jobs.ErrCancelled
	}

	// Stage 4: synthesize and run the ffmpeg command.
	p.Jobs.UpdateProgress(jobID, 50, "Building render command")
	videoID := uuid.NewString()
	if err := os.MkdirAll(p.OutputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	outputPath := filepath.Join(p.OutputDir, videoID+".mp4")

	command, err := ffmpeg.BuildCommand(cfg, probes, outputPath, subtitlePath, p.Encode)
	if err != nil {
		return nil, err
	}

	p.Jobs.UpdateProgress(jobID, 60, "Rendering video with FFmpeg")
	if err := ffmpeg.Execute(ctx, command, p.FFmpegTimeout); err != nil {
		return nil, err
	}

	p.Jobs.UpdateProgress(jobID, 90, "Finalizing")
	sizeMB := outputSizeMB(outputPath)

	p.deliver(ctx, videoID, outputPath)

	transcribed := 0
	for _, r := range results {
		if r.Success {
			transcribed++
		}
	}

	return &models.RenderResult{
		VideoID:            videoID,
		DownloadURL:        "/download/" + videoID,
		AudioAnalysis:      probes,
		TotalDuration:      totalDuration + ffmpeg.PadDuration,
		FFmpegCommand:      ffmpeg.CommandString(command),
		OutputSizeMB:       sizeMB,
		SubtitleEnabled:    subtitlePath != "",
		TranscriptionCount: transcribed,
	}, nil
}

// deliver pushes the finished video to the configured backend. A delivery
// failure is logged and swallowed; the job still completes with the local
// copy available for download.
func (p *Pipeline) deliver(ctx context.Context, videoID, outputPath string) {
	if p.DeliveryBackend == "" {
		return
	}
	f, err := os.Open(outputPath)
	if err != nil {
		logger.Warnf("Delivery skipped, cannot open output: %v", err)
		return
	}
	defer f.Close()

	access := make(map[string]string, len(p.DeliveryAccess)+1)
	for k, v := range p.DeliveryAccess {
		access[k] = v
	}
	access["object"] = videoID + ".mp4"

	if err := delivery.Upload(ctx, access, f, p.DeliveryBackend); err != nil {
		logger.Warnf("Delivery to %s failed: %v", p.DeliveryBackend, err)
		return
	}
	logger.Infof("Video %s delivered via %s", videoID, p.DeliveryBackend)
}

func outputSizeMB(path string) float64 {
	info, err := os.Stat(path)
	if err != nil {
		logger.Warnf("Could not stat output file: %v", err)
		return 0
	}
	return float64(info.Size()) / (1024 * 1024)
}
