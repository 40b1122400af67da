package transcribe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"scenecast/models"
)

type fakeTranscriber struct {
	fail  map[string]bool
	delay map[string]time.Duration
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioURL, workDir string) (string, []models.Word, error) {
	if d, ok := f.delay[audioURL]; ok {
		select {
		case <-ctx.Done():
			return "", nil, ctx.Err()
		case <-time.After(d):
		}
	}
	if f.fail[audioURL] {
		return "", nil, errors.New("model exploded")
	}
	return "text for " + audioURL, []models.Word{{Word: "hello", Start: 0, End: 0.5}}, nil
}

func subtitledConfig(audioURLs ...string) *models.VideoConfig {
	cfg := &models.VideoConfig{
		Elements: []models.GlobalElement{
			{Subtitle: &models.SubtitleElement{Settings: models.DefaultSubtitleStyle()}},
		},
	}
	for _, url := range audioURLs {
		cfg.Scenes = append(cfg.Scenes, models.Scene{
			Elements: []models.SceneElement{{Audio: &models.AudioElement{Src: url}}},
		})
	}
	return cfg
}

func probesAndTimings(urls ...string) ([]models.AudioProbe, []models.SceneTiming) {
	var probes []models.AudioProbe
	for i, url := range urls {
		probes = append(probes, models.AudioProbe{SceneIndex: i, URL: url, Duration: 2})
	}
	return probes, models.CalculateSceneTimings(probes)
}

func TestTranscribeScenesOrderedResults(t *testing.T) {
	o := NewOrchestrator(4, time.Second, true, &fakeTranscriber{
		delay: map[string]time.Duration{"s0.mp3": 20 * time.Millisecond},
	})
	cfg := subtitledConfig("s0.mp3", "s1.mp3", "s2.mp3")
	probes, timings := probesAndTimings("s0.mp3", "s1.mp3", "s2.mp3")

	results := o.TranscribeScenes(context.Background(), cfg, probes, timings, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.SceneIndex != i {
			t.Errorf("result %d has scene index %d", i, r.SceneIndex)
		}
		if !r.Success {
			t.Errorf("result %d unexpectedly failed: %s", i, r.Error)
		}
	}
}

func TestTranscribeScenesFailureIsolated(t *testing.T) {
	o := NewOrchestrator(4, time.Second, true, &fakeTranscriber{
		fail: map[string]bool{"s1.mp3": true},
	})
	cfg := subtitledConfig("s0.mp3", "s1.mp3", "s2.mp3")
	probes, timings := probesAndTimings("s0.mp3", "s1.mp3", "s2.mp3")

	results := o.TranscribeScenes(context.Background(), cfg, probes, timings, t.TempDir())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Success != true || results[2].Success != true {
		t.Error("healthy scenes affected by failing scene")
	}
	if results[1].Success {
		t.Error("failing scene reported success")
	}
	if !strings.Contains(results[1].Error, "transcription failed") {
		t.Errorf("unexpected error text: %s", results[1].Error)
	}
}

func TestTranscribeScenesSkipsWithoutSubtitleElement(t *testing.T) {
	o := NewOrchestrator(4, time.Second, true, &fakeTranscriber{})
	cfg := &models.VideoConfig{Scenes: []models.Scene{{}}}
	probes, timings := probesAndTimings("s0.mp3")

	if results := o.TranscribeScenes(context.Background(), cfg, probes, timings, t.TempDir()); results != nil {
		t.Errorf("expected nil results, got %+v", results)
	}
}

func TestTranscribeScenesSkipsWhenDisabled(t *testing.T) {
	o := NewOrchestrator(4, time.Second, false, &fakeTranscriber{})
	cfg := subtitledConfig("s0.mp3")
	probes, timings := probesAndTimings("s0.mp3")

	if results := o.TranscribeScenes(context.Background(), cfg, probes, timings, t.TempDir()); results != nil {
		t.Errorf("expected nil results, got %+v", results)
	}
}

func TestTranscribeScenesSynthesizesMissingScenes(t *testing.T) {
	o := NewOrchestrator(4, time.Second, true, &fakeTranscriber{})
	cfg := subtitledConfig("s0.mp3")
	// Timings cover a scene the probes know nothing about.
	probes := []models.AudioProbe{{SceneIndex: 0, URL: "s0.mp3", Duration: 2}}
	timings := []models.SceneTiming{
		{SceneIndex: 0, Start: 0, End: 2, Duration: 2},
		{SceneIndex: 5, Start: 2, End: 4, Duration: 2},
	}

	results := o.TranscribeScenes(context.Background(), cfg, probes, timings, t.TempDir())
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Success || results[1].Error != "no audio found for scene" {
		t.Errorf("missing scene not synthesized: %+v", results[1])
	}
}

func TestTranscribeScenesTimeout(t *testing.T) {
	o := NewOrchestrator(2, 10*time.Millisecond, true, &fakeTranscriber{
		delay: map[string]time.Duration{"slow.mp3": time.Second},
	})
	cfg := subtitledConfig("slow.mp3")
	probes, timings := probesAndTimings("slow.mp3")

	results := o.TranscribeScenes(context.Background(), cfg, probes, timings, t.TempDir())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Success {
		t.Error("timed-out transcription reported success")
	}
}
