package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"

	"scenecast/models"
)

// Transcriber produces a transcript with word timestamps for a single audio
// source. Timestamps are relative to the clip's own start.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL, workDir string) (string, []models.Word, error)
}

// WhisperCLI shells out to the whisper command-line tool with JSON output
// and word-level timestamps enabled.
type WhisperCLI struct {
	Binary string
	Model  string
}

// NewWhisperCLI returns a transcriber for the given binary and model name.
func NewWhisperCLI(binary, model string) *WhisperCLI {
	if binary == "" {
		binary = "whisper"
	}
	return &WhisperCLI{Binary: binary, Model: model}
}

type whisperOutput struct {
	Text     string `json:"text"`
	Segments []struct {
		Text  string `json:"text"`
		Words []struct {
			Word  string  `json:"word"`
			Start float64 `json:"start"`
			End   float64 `json:"end"`
		} `json:"words"`
	} `json:"segments"`
}

func (w *WhisperCLI) Transcribe(ctx context.Context, audioURL, workDir string) (string, []models.Word, error) {
	cmd := exec.CommandContext(ctx, w.Binary,
		audioURL,
		"--model", w.Model,
		"--output_format", "json",
		"--output_dir", workDir,
		"--word_timestamps", "True",
		"--temperature", "0",
		"--beam_size", "1",
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", nil, fmt.Errorf("whisper failed: %w\n%s", err, string(out))
	}

	// Whisper names its output after the input file.
	jsonPath := filepath.Join(workDir, outputBase(audioURL)+".json")
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", nil, fmt.Errorf("read whisper output: %w", err)
	}

	var result whisperOutput
	if err := json.Unmarshal(data, &result); err != nil {
		return "", nil, fmt.Errorf("parse whisper output: %w", err)
	}

	var words []models.Word
	for _, seg := range result.Segments {
		for _, wd := range seg.Words {
			text := strings.TrimSpace(wd.Word)
			if text == "" {
				continue
			}
			words = append(words, models.Word{Word: text, Start: wd.Start, End: wd.End})
		}
	}
	return strings.TrimSpace(result.Text), words, nil
}

// outputBase mirrors whisper's naming: the input's base name without its
// extension, ignoring any query string on URLs.
func outputBase(audioURL string) string {
	name := audioURL
	if u, err := url.Parse(audioURL); err == nil && u.Path != "" {
		name = u.Path
	}
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
