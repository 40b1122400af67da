package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads an optional .env file into the process environment. Missing
// files are fine; real environment variables win over .env entries.
func Load() {
	_ = godotenv.Load()
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// ListenAddr is the HTTP listen address.
func ListenAddr() string {
	return getString("SCENECAST_ADDR", ":3002")
}

// GetDataDir returns the directory holding the job database.
// Priority: SCENECAST_DATA_DIR environment variable > "./data" default.
func GetDataDir() string {
	return getString("SCENECAST_DATA_DIR", "./data")
}

// GetJobsDBPath returns the full path to the job record database.
// Path: {DATA_DIR}/jobs.db
func GetJobsDBPath() string {
	return filepath.Join(GetDataDir(), "jobs.db")
}

// GetOutputDir returns the directory where rendered videos are written.
func GetOutputDir() string {
	return getString("SCENECAST_OUTPUT_DIR", "./generated_videos")
}

// Probe settings.
func ProbeWorkers() int { return getInt("AUDIO_ANALYSIS_WORKERS", 10) }
func ProbeTimeout() time.Duration {
	return time.Duration(getInt("AUDIO_ANALYSIS_TIMEOUT", 30)) * time.Second
}

// Transcription settings.
func TranscriptionWorkers() int { return getInt("TRANSCRIPTION_WORKERS", 5) }
func TranscriptionTimeout() time.Duration {
	return time.Duration(getInt("TRANSCRIPTION_TIMEOUT", 300)) * time.Second
}
func SubtitlesEnabled() bool { return getBool("ENABLE_SUBTITLES", true) }
func WhisperBinary() string  { return getString("WHISPER_BINARY", "whisper") }
func WhisperModel() string   { return getString("WHISPER_MODEL", "medium") }

// Render settings.
func RenderWorkers() int { return getInt("VIDEO_GENERATION_WORKERS", 2) }
func FFmpegTimeout() time.Duration {
	return time.Duration(getInt("FFMPEG_TIMEOUT", 600)) * time.Second
}
func VideoPreset() string  { return getString("VIDEO_PRESET", "fast") }
func VideoQualityCRF() int { return getInt("VIDEO_QUALITY_CRF", 23) }

// Job retention.
func JobTTL() time.Duration {
	return time.Duration(getInt("MAX_JOB_AGE", 3600)) * time.Second
}
func CleanupInterval() time.Duration {
	return time.Duration(getInt("CLEANUP_INTERVAL", 300)) * time.Second
}

// TokenSecret is the shared HMAC secret for render tokens. Empty disables
// authentication (development mode).
func TokenSecret() string {
	return os.Getenv("SCENECAST_TOKEN_SECRET")
}

// Delivery settings. Backend is empty when uploads are disabled.
func DeliveryBackend() string { return os.Getenv("DELIVERY_BACKEND") }

// DeliveryAccessInfo collects the credential set for the configured delivery
// backend from the environment. Each backend reads its own keys.
func DeliveryAccessInfo() map[string]string {
	return map[string]string{
		"bucket":          os.Getenv("DELIVERY_BUCKET"),
		"region":          os.Getenv("DELIVERY_REGION"),
		"accessKey":       os.Getenv("DELIVERY_ACCESS_KEY"),
		"secretKey":       os.Getenv("DELIVERY_SECRET_KEY"),
		"credentialsJSON": os.Getenv("DELIVERY_GCS_CREDENTIALS"),
		"host":            os.Getenv("DELIVERY_SFTP_HOST"),
		"port":            os.Getenv("DELIVERY_SFTP_PORT"),
		"user":            os.Getenv("DELIVERY_SFTP_USER"),
		"password":        os.Getenv("DELIVERY_SFTP_PASSWORD"),
		"privateKey":      os.Getenv("DELIVERY_SFTP_KEY"),
		"remoteDir":       os.Getenv("DELIVERY_SFTP_DIR"),
		"baseDir":         getString("SCENECAST_SERVE_DIR", "./serve"),
	}
}

// Logging.
func LogFile() string { return os.Getenv("SCENECAST_LOG_FILE") }
