package transcribe

import "testing"

func TestOutputBase(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.com/audio/narration1.mp3":       "narration1",
		"https://cdn.example.com/clip.wav?token=abc&exp=123": "clip",
		"local-file.mp3": "local-file",
		"noextension":    "noextension",
	}
	for in, want := range cases {
		if got := outputBase(in); got != want {
			t.Errorf("outputBase(%q): got %q, want %q", in, got, want)
		}
	}
}
