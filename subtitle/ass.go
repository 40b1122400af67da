// Package subtitle turns transcriptions and scene timings into a styled ASS
// caption track, either one line per scene or word-by-word.
package subtitle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scenecast/logger"
	"scenecast/models"
)

// ErrNoTranscriptions is returned when captions were requested but no scene
// produced usable text. Callers treat this as fatal to the render.
var ErrNoTranscriptions = errors.New("no valid transcriptions found for subtitle generation")

// BuildASS renders the full caption track. Only successful, non-empty
// transcriptions contribute events; results and timings are matched
// positionally, the way the pipeline produces them.
func BuildASS(
	results []models.TranscriptionResult,
	timings []models.SceneTiming,
	style models.SubtitleStyle,
) (string, error) {
	type pair struct {
		result models.TranscriptionResult
		timing models.SceneTiming
	}
	var valid []pair
	for i, r := range results {
		if i >= len(timings) {
			break
		}
		if r.Success && strings.TrimSpace(r.Text) != "" {
			valid = append(valid, pair{result: r, timing: timings[i]})
		}
	}
	if len(valid) == 0 {
		return "", ErrNoTranscriptions
	}

	var b strings.Builder
	b.WriteString(header(style))
	for _, p := range valid {
		if style.Style == "progressive" {
			b.WriteString(progressiveEvents(p.result, p.timing))
		} else {
			b.WriteString(lineEvent(p.result, p.timing))
		}
	}
	return b.String(), nil
}

// WriteFile writes the caption track into dir and returns its path.
func WriteFile(content, dir string) (string, error) {
	path := filepath.Join(dir, "subtitles.ass")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write subtitle file: %w", err)
	}
	logger.Infof("ASS subtitle file created: %s", path)
	return path, nil
}

func header(style models.SubtitleStyle) string {
	return fmt.Sprintf(`[Script Info]
Title: Generated Subtitles
ScriptType: v4.00+
WrapStyle: 0
ScaledBorderAndShadow: yes
YCbCr Matrix: TV.709

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: Default,%s,%d,%s,%s,%s,%s,1,0,0,0,100,100,0,0,1,%d,%d,%d,10,10,20,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`,
		style.FontFamily,
		style.FontSize,
		parseColor(style.WordColor),
		parseColor(style.LineColor),
		parseColor(style.OutlineColor),
		parseColor(style.BoxColor),
		style.OutlineWidth,
		style.ShadowOffset,
		alignment(style.Position),
	)
}

// lineEvent emits one dialogue spanning the whole scene window.
func lineEvent(result models.TranscriptionResult, timing models.SceneTiming) string {
	return fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
		assTime(timing.Start), assTime(timing.End), sanitize(result.Text))
}

// progressiveEvents emits one dialogue per word. Word timestamps are relative
// to the clip, so each is shifted by the scene start and clamped into the
// scene window; a word stays visible until the next word appears, the last
// one until the scene ends.
func progressiveEvents(result models.TranscriptionResult, timing models.SceneTiming) string {
	if len(result.Words) == 0 {
		logger.Warn("Progressive subtitles require word timestamps, skipping")
		return ""
	}

	var b strings.Builder
	for i, word := range result.Words {
		text := sanitize(word.Word)
		if text == "" {
			continue
		}

		start := clamp(timing.Start+word.Start, timing.Start, timing.End)

		var end float64
		if i+1 < len(result.Words) {
			end = clamp(timing.Start+result.Words[i+1].Start, timing.Start, timing.End)
		} else {
			end = timing.End
		}

		// Timestamps past the scene window (an understated probe, say) clamp
		// both ends to the same instant; a zero-width event renders nothing.
		if start >= end {
			continue
		}

		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n", assTime(start), assTime(end), text)
	}
	return b.String()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitize makes raw transcription text safe inside an ASS dialogue line.
func sanitize(text string) string {
	s := strings.ReplaceAll(text, "\n", `\N`)
	s = strings.ReplaceAll(s, "{", `\{`)
	s = strings.ReplaceAll(s, "}", `\}`)
	s = strings.ReplaceAll(s, "|", `\h`)
	return strings.Join(strings.Fields(s), " ")
}

// assTime formats seconds as the ASS H:MM:SS.CC timestamp.
func assTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := int(seconds) / 3600
	m := (int(seconds) % 3600) / 60
	s := seconds - float64(h*3600+m*60)
	return fmt.Sprintf("%d:%02d:%05.2f", h, m, s)
}
