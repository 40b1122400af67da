package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"scenecast/logger"
	"scenecast/models"
)

// PadDuration is the fixed tail of silence appended after the last audio
// clip, in seconds. The output duration includes the same buffer.
const PadDuration = 2.0

// overlayBoxSize is the fixed square every overlay image is scaled into.
const overlayBoxSize = 500

// EncodeSettings are the fixed encode parameters of the output.
type EncodeSettings struct {
	Preset string
	CRF    int
}

// BuildCommand synthesizes the complete ffmpeg invocation for a render:
// input ordering, background loop count, the audio/overlay/subtitle filter
// graph, output mapping and encode parameters. The result is deterministic
// for identical inputs.
func BuildCommand(
	cfg *models.VideoConfig,
	probes []models.AudioProbe,
	outputPath string,
	subtitlePath string,
	enc EncodeSettings,
) ([]string, error) {
	if err := validate(cfg, probes); err != nil {
		return nil, err
	}

	bg := cfg.BackgroundVideo()
	totalDuration := TotalDuration(probes)
	loops := loopCount(bg.Duration, totalDuration)

	cmd := []string{"ffmpeg", "-y"}
	cmd = append(cmd, "-protocol_whitelist", "file,http,https,tcp,tls")

	// Input 0: background video, looped to cover the whole timeline.
	cmd = append(cmd, "-stream_loop", strconv.Itoa(loops), "-i", ResolveURL(bg.Src))

	// One input per audio probe, in probe order.
	for _, p := range probes {
		cmd = append(cmd, "-i", ResolveURL(p.URL))
	}

	// One input per unique image URL, first-seen order. Repeated references
	// share the input slot and differ only in their overlay window.
	images := cfg.ImageSources()
	for i := range images {
		images[i].URL = ResolveURL(images[i].URL)
	}
	uniqueImages := dedupeImageURLs(images)
	for _, url := range uniqueImages {
		cmd = append(cmd, "-i", url)
	}

	var filters []string
	currentVideo := "0:v"

	audioMap := buildAudioFilters(&filters, len(probes))

	if len(uniqueImages) > 0 {
		currentVideo = buildImageOverlays(&filters, images, uniqueImages, probes, len(probes))
	}

	if subtitlePath != "" {
		filters = append(filters, fmt.Sprintf("[%s]ass=%s[subtitled_video]", currentVideo, subtitlePath))
		currentVideo = "subtitled_video"
	}

	if len(filters) > 0 {
		cmd = append(cmd, "-filter_complex", strings.Join(filters, ";"))
		if currentVideo != "0:v" {
			cmd = append(cmd, "-map", "["+currentVideo+"]")
		} else {
			cmd = append(cmd, "-map", "0:v")
		}
	} else {
		cmd = append(cmd, "-map", "0:v")
	}
	cmd = append(cmd, "-map", audioMap)

	cmd = append(cmd,
		"-c:v", "libx264",
		"-preset", enc.Preset,
		"-crf", strconv.Itoa(enc.CRF),
	)
	cmd = append(cmd, "-s", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	cmd = append(cmd, "-t", formatSeconds(totalDuration))
	cmd = append(cmd, outputPath)

	logger.Infof("FFmpeg command generated (%d arguments)", len(cmd))
	return cmd, nil
}

// TotalDuration is the sum of all probed durations plus the fixed buffer.
func TotalDuration(probes []models.AudioProbe) float64 {
	total := 0.0
	for _, p := range probes {
		total += p.Duration
	}
	return total + PadDuration
}

func validate(cfg *models.VideoConfig, probes []models.AudioProbe) error {
	if cfg.BackgroundVideo() == nil {
		return &models.ConfigurationError{Reason: "no background video specified"}
	}
	if len(probes) == 0 {
		return &models.ConfigurationError{Reason: "no audio files found"}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return &models.ConfigurationError{Reason: "invalid video dimensions"}
	}
	if len(cfg.Scenes) == 0 {
		return &models.ConfigurationError{Reason: "no scenes specified"}
	}
	return nil
}

// loopCount derives -stream_loop for the background input. -1 means loop
// forever, used when the source duration is unknown; the -t bound still caps
// the output.
func loopCount(bgDuration, totalDuration float64) int {
	if bgDuration <= 0 {
		return -1
	}
	loops := int(totalDuration/bgDuration) + 1
	logger.Debugf("Background video: %.1fs, total: %.1fs, loops: %d", bgDuration, totalDuration, loops)
	return loops
}

func dedupeImageURLs(images []models.ImageSource) []string {
	var unique []string
	seen := make(map[string]bool)
	for _, img := range images {
		if !seen[img.URL] {
			seen[img.URL] = true
			unique = append(unique, img.URL)
		}
	}
	return unique
}

// buildAudioFilters appends the audio chain and returns the stream label to
// map as output audio. With no audio inputs the background's own track is
// used.
func buildAudioFilters(filters *[]string, audioCount int) string {
	switch {
	case audioCount > 1:
		var inputs strings.Builder
		for i := 0; i < audioCount; i++ {
			fmt.Fprintf(&inputs, "[%d:a]", i+1)
		}
		*filters = append(*filters,
			fmt.Sprintf("%sconcat=n=%d:v=0:a=1[concatenated_audio]", inputs.String(), audioCount),
			fmt.Sprintf("[concatenated_audio]apad=pad_dur=%d[final_audio]", int(PadDuration)),
		)
		return "[final_audio]"
	case audioCount == 1:
		*filters = append(*filters, fmt.Sprintf("[1:a]apad=pad_dur=%d[final_audio]", int(PadDuration)))
		return "[final_audio]"
	default:
		return "0:a"
	}
}

// buildImageOverlays chains one scale+overlay pair per image reference. Each
// overlay is active only during its owning scene's window; stacking order
// follows reference order.
func buildImageOverlays(
	filters *[]string,
	images []models.ImageSource,
	uniqueImages []string,
	probes []models.AudioProbe,
	audioCount int,
) string {
	timings := models.CalculateSceneTimings(probes)
	timingByScene := make(map[int]models.SceneTiming, len(timings))
	for _, t := range timings {
		timingByScene[t.SceneIndex] = t
	}

	inputIndex := make(map[string]int, len(uniqueImages))
	for i, url := range uniqueImages {
		inputIndex[url] = audioCount + 1 + i
	}

	currentVideo := "0:v"
	overlayCount := 0
	for i, img := range images {
		timing, ok := timingByScene[img.SceneIndex]
		if !ok {
			// No audio in the owning scene means no time window; skip.
			continue
		}
		*filters = append(*filters,
			fmt.Sprintf("[%d:v]scale=%d:%d[scaled_img_%d]", inputIndex[img.URL], overlayBoxSize, overlayBoxSize, i))

		prev := currentVideo
		if overlayCount > 0 {
			prev = fmt.Sprintf("overlay_%d", overlayCount-1)
		}
		*filters = append(*filters,
			fmt.Sprintf("[%s][scaled_img_%d]overlay=%d:%d:enable=between(t\\,%s\\,%s)[overlay_%d]",
				prev, i, img.X, img.Y,
				formatSeconds(timing.Start), formatSeconds(timing.End), overlayCount))

		logger.Debugf("Image %d overlay: scene %d, window %.1f-%.1fs, pos (%d,%d)",
			i, img.SceneIndex, timing.Start, timing.End, img.X, img.Y)
		overlayCount++
	}

	if overlayCount == 0 {
		return currentVideo
	}
	return fmt.Sprintf("overlay_%d", overlayCount-1)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
