package models

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateSceneTimingsContiguous(t *testing.T) {
	probes := []AudioProbe{
		{SceneIndex: 0, URL: "a0.mp3", Duration: 3.5},
		{SceneIndex: 1, URL: "a1.mp3", Duration: 2.0},
		{SceneIndex: 2, URL: "a2.mp3", Duration: 4.25},
	}

	timings := CalculateSceneTimings(probes)
	if len(timings) != 3 {
		t.Fatalf("expected 3 timings, got %d", len(timings))
	}

	expected := []SceneTiming{
		{SceneIndex: 0, Start: 0, End: 3.5, Duration: 3.5},
		{SceneIndex: 1, Start: 3.5, End: 5.5, Duration: 2.0},
		{SceneIndex: 2, Start: 5.5, End: 9.75, Duration: 4.25},
	}
	for i, want := range expected {
		got := timings[i]
		if got.SceneIndex != want.SceneIndex ||
			!almostEqual(got.Start, want.Start) ||
			!almostEqual(got.End, want.End) ||
			!almostEqual(got.Duration, want.Duration) {
			t.Errorf("timing %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestCalculateSceneTimingsSumsMultipleClips(t *testing.T) {
	probes := []AudioProbe{
		{SceneIndex: 0, URL: "a.mp3", Duration: 1.0},
		{SceneIndex: 0, URL: "b.mp3", Duration: 2.0},
		{SceneIndex: 1, URL: "c.mp3", Duration: 5.0},
	}

	timings := CalculateSceneTimings(probes)
	if len(timings) != 2 {
		t.Fatalf("expected 2 timings, got %d", len(timings))
	}
	if !almostEqual(timings[0].Duration, 3.0) {
		t.Errorf("scene 0 duration: got %f, want 3.0", timings[0].Duration)
	}
	if !almostEqual(timings[1].Start, 3.0) || !almostEqual(timings[1].End, 8.0) {
		t.Errorf("scene 1 window: got %f-%f, want 3.0-8.0", timings[1].Start, timings[1].End)
	}
}

func TestCalculateSceneTimingsOrdersByScene(t *testing.T) {
	probes := []AudioProbe{
		{SceneIndex: 2, URL: "late.mp3", Duration: 1.0},
		{SceneIndex: 0, URL: "early.mp3", Duration: 2.0},
	}

	timings := CalculateSceneTimings(probes)
	if len(timings) != 2 {
		t.Fatalf("expected 2 timings, got %d", len(timings))
	}
	if timings[0].SceneIndex != 0 || timings[1].SceneIndex != 2 {
		t.Errorf("timings not in scene order: %+v", timings)
	}
	if !almostEqual(timings[1].Start, 2.0) {
		t.Errorf("scene 2 should start after scene 0, got %f", timings[1].Start)
	}
}

func TestCalculateSceneTimingsEmpty(t *testing.T) {
	if timings := CalculateSceneTimings(nil); len(timings) != 0 {
		t.Errorf("expected no timings, got %+v", timings)
	}
}
