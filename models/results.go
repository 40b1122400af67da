package models

// AudioProbe is one duration measurement of a scene audio source.
type AudioProbe struct {
	SceneIndex int     `json:"scene_index"`
	URL        string  `json:"url"`
	Duration   float64 `json:"duration"`
}

// SceneTiming is the absolute time window of one scene. Windows derived from
// the same probe set are contiguous: each scene starts where the previous one
// ended.
type SceneTiming struct {
	SceneIndex int     `json:"scene_index"`
	Start      float64 `json:"start_time"`
	End        float64 `json:"end_time"`
	Duration   float64 `json:"duration"`
}

// Word is a single transcribed word with timestamps relative to the start of
// its own audio clip, not the video timeline.
type Word struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TranscriptionResult is the per-scene outcome of speech-to-text. A failed
// scene carries its error here instead of aborting the batch.
type TranscriptionResult struct {
	SceneIndex int    `json:"scene_index"`
	Text       string `json:"transcription,omitempty"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Words      []Word `json:"word_timestamps,omitempty"`
}

// RenderResult is the completion payload of a successful render job.
type RenderResult struct {
	VideoID            string       `json:"video_id"`
	DownloadURL        string       `json:"download_url"`
	AudioAnalysis      []AudioProbe `json:"audio_analysis"`
	TotalDuration      float64      `json:"total_duration"`
	FFmpegCommand      string       `json:"ffmpeg_command"`
	OutputSizeMB       float64      `json:"output_size_mb"`
	SubtitleEnabled    bool         `json:"subtitle_enabled"`
	TranscriptionCount int          `json:"transcription_count"`
}

// Statistics aggregates the job store for the stats endpoint.
type Statistics struct {
	TotalJobs              int               `json:"total_jobs"`
	StatusCounts           map[JobStatus]int `json:"status_counts"`
	AverageDurationSeconds float64           `json:"average_duration_seconds"`
	MaxWorkers             int               `json:"max_workers"`
	ActiveWorkers          int               `json:"active_workers"`
}
