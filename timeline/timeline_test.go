package timeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"scenecast/models"
)

func testConfig(audioURLs ...string) *models.VideoConfig {
	cfg := &models.VideoConfig{
		Width:  1920,
		Height: 1080,
		Elements: []models.GlobalElement{
			{Video: &models.VideoElement{Src: "bg.mp4", Duration: 30}},
		},
	}
	for _, url := range audioURLs {
		cfg.Scenes = append(cfg.Scenes, models.Scene{
			Elements: []models.SceneElement{{Audio: &models.AudioElement{Src: url}}},
		})
	}
	return cfg
}

func TestAnalyzeNoAudioIsConfigurationError(t *testing.T) {
	a := NewAnalyzer(4, time.Second)
	cfg := testConfig()
	cfg.Scenes = []models.Scene{{ID: "empty"}}

	_, _, err := a.Analyze(context.Background(), cfg)
	var cfgErr *models.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestAnalyzeUsesFallbackOnFailure(t *testing.T) {
	a := NewAnalyzer(4, time.Second)
	a.Probe = func(ctx context.Context, url string) (float64, error) {
		if url == "bad.mp3" {
			return 0, errors.New("unreachable")
		}
		return 3.0, nil
	}

	probes, total, err := a.Analyze(context.Background(), testConfig("good.mp3", "bad.mp3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(probes) != 2 {
		t.Fatalf("expected 2 probes, got %d", len(probes))
	}
	if probes[1].Duration != FallbackDuration {
		t.Errorf("failed probe duration: got %f, want fallback %f", probes[1].Duration, FallbackDuration)
	}
	if total != 3.0+FallbackDuration {
		t.Errorf("total: got %f, want %f", total, 3.0+FallbackDuration)
	}
}

func TestAnalyzeSortsProbesByScene(t *testing.T) {
	a := NewAnalyzer(8, time.Second)
	// Stagger completion so later scenes finish first.
	a.Probe = func(ctx context.Context, url string) (float64, error) {
		if url == "s0.mp3" {
			time.Sleep(20 * time.Millisecond)
		}
		return 1.0, nil
	}

	probes, _, err := a.Analyze(context.Background(), testConfig("s0.mp3", "s1.mp3", "s2.mp3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range probes {
		if p.SceneIndex != i {
			t.Errorf("probe %d has scene index %d", i, p.SceneIndex)
		}
	}
}

func TestAnalyzeRespectsPerProbeTimeout(t *testing.T) {
	a := NewAnalyzer(2, 10*time.Millisecond)
	a.Probe = func(ctx context.Context, url string) (float64, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Second):
			return 99, nil
		}
	}

	probes, _, err := a.Analyze(context.Background(), testConfig("slow.mp3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probes[0].Duration != FallbackDuration {
		t.Errorf("timed-out probe should fall back, got %f", probes[0].Duration)
	}
}

func TestAnalyzeResolvesDriveShareLinks(t *testing.T) {
	fileID := "1aBcDeFgHiJkLmNoPqRsTuVwXyZ012345"
	share := "https://drive.google.com/file/d/" + fileID + "/view?usp=sharing"
	direct := "https://drive.google.com/uc?export=download&id=" + fileID

	a := NewAnalyzer(1, time.Second)
	var probed string
	a.Probe = func(ctx context.Context, url string) (float64, error) {
		probed = url
		return 4.0, nil
	}

	probes, _, err := a.Analyze(context.Background(), testConfig(share))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if probed != direct {
		t.Errorf("probe received %q, want resolved %q", probed, direct)
	}
	if probes[0].URL != direct {
		t.Errorf("probe record carries %q, want resolved %q", probes[0].URL, direct)
	}
}

func TestSortProbesStableWithinScene(t *testing.T) {
	probes := []models.AudioProbe{
		{SceneIndex: 1, URL: "b.mp3"},
		{SceneIndex: 0, URL: "a1.mp3"},
		{SceneIndex: 0, URL: "a2.mp3"},
	}
	sortProbes(probes)
	if probes[0].URL != "a1.mp3" || probes[1].URL != "a2.mp3" || probes[2].URL != "b.mp3" {
		t.Errorf("unexpected order: %+v", probes)
	}
}
