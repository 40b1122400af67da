package ffmpeg

import (
	"strings"
	"testing"

	"scenecast/models"
)

const driveFileID = "1aBcDeFgHiJkLmNoPqRsTuVwXyZ012345"

func TestResolveURL(t *testing.T) {
	want := "https://drive.google.com/uc?export=download&id=" + driveFileID
	cases := map[string]string{
		"https://drive.google.com/file/d/" + driveFileID + "/view?usp=sharing": want,
		"https://drive.google.com/open?id=" + driveFileID:                      want,
		"https://drive.google.com/uc?export=download&id=" + driveFileID:        want,
		// Non-Drive locators pass through untouched.
		"https://cdn.example.com/clip.mp3": "https://cdn.example.com/clip.mp3",
		"local-file.mp3":                   "local-file.mp3",
	}
	for in, wantURL := range cases {
		if got := ResolveURL(in); got != wantURL {
			t.Errorf("ResolveURL(%q):\n got %s\nwant %s", in, got, wantURL)
		}
	}
}

func TestResolveURLKeepsUnparseableDriveLinks(t *testing.T) {
	cases := []string{
		"https://drive.google.com/drive/folders/xyz",
		"https://drive.google.com/file/d/tooshort/view",
		"https://drive.google.com/open?id=has spaces and $ymbols!!",
	}
	for _, in := range cases {
		if got := ResolveURL(in); got != in {
			t.Errorf("ResolveURL(%q) rewrote an unparseable link to %q", in, got)
		}
	}
}

func TestBuildCommandResolvesDriveInputs(t *testing.T) {
	share := "https://drive.google.com/file/d/" + driveFileID + "/view"
	direct := "https://drive.google.com/uc?export=download&id=" + driveFileID

	cfg := renderConfig()
	cfg.Elements = []models.GlobalElement{
		{Video: &models.VideoElement{Src: share, Duration: 15}},
	}
	cfg.Scenes[0].Elements[1].Image.Src = share

	probes := []models.AudioProbe{
		{SceneIndex: 0, URL: share, Duration: 5},
		{SceneIndex: 1, URL: "a1.mp3", Duration: 7},
	}

	cmd, err := BuildCommand(cfg, probes, "out.mp4", "", enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	joined := strings.Join(cmd, " ")
	if strings.Contains(joined, share) {
		t.Errorf("share link reached the command:\n%s", joined)
	}
	// Background, one audio input, one image input.
	if n := strings.Count(joined, direct); n != 3 {
		t.Errorf("expected 3 resolved inputs, got %d:\n%s", n, joined)
	}
}
