package render

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"scenecast/ffmpeg"
	"scenecast/jobs"
	"scenecast/models"
	"scenecast/subtitle"
	"scenecast/timeline"
	"scenecast/transcribe"
)

type failingTranscriber struct{}

func (failingTranscriber) Transcribe(ctx context.Context, audioURL, workDir string) (string, []models.Word, error) {
	return "", nil, errors.New("model not loaded")
}

func testPipeline(t *testing.T) (*Pipeline, *jobs.Service) {
	t.Helper()
	store, err := jobs.OpenStore(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	svc := jobs.NewService(store, 1)
	t.Cleanup(svc.Close)

	analyzer := timeline.NewAnalyzer(2, time.Second)
	analyzer.Probe = func(ctx context.Context, url string) (float64, error) {
		return 3.0, nil
	}

	p := &Pipeline{
		Jobs:          svc,
		Analyzer:      analyzer,
		Transcriber:   transcribe.NewOrchestrator(2, time.Second, true, failingTranscriber{}),
		Encode:        ffmpeg.EncodeSettings{Preset: "fast", CRF: 23},
		FFmpegTimeout: time.Second,
		OutputDir:     t.TempDir(),
	}
	return p, svc
}

func subtitledConfig() *models.VideoConfig {
	return &models.VideoConfig{
		Width:  1920,
		Height: 1080,
		Scenes: []models.Scene{
			{Elements: []models.SceneElement{{Audio: &models.AudioElement{Src: "a0.mp3"}}}},
		},
		Elements: []models.GlobalElement{
			{Video: &models.VideoElement{Src: "bg.mp4", Duration: 10}},
			{Subtitle: &models.SubtitleElement{Settings: models.DefaultSubtitleStyle()}},
		},
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	p, svc := testPipeline(t)
	id, _ := svc.Create(subtitledConfig())

	cfg := subtitledConfig()
	cfg.Scenes = nil
	_, err := p.Run(context.Background(), id, cfg)
	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunObservesCancellation(t *testing.T) {
	p, svc := testPipeline(t)
	id, _ := svc.Create(subtitledConfig())
	svc.Cancel(id)

	_, err := p.Run(context.Background(), id, subtitledConfig())
	if !errors.Is(err, jobs.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestRunFailsWhenCaptionsCannotBeBuilt(t *testing.T) {
	p, svc := testPipeline(t)
	id, _ := svc.Create(subtitledConfig())

	// Captions were requested but every transcription fails, so the render
	// must fail rather than silently drop them.
	_, err := p.Run(context.Background(), id, subtitledConfig())
	if !errors.Is(err, subtitle.ErrNoTranscriptions) {
		t.Fatalf("expected ErrNoTranscriptions, got %v", err)
	}
}
