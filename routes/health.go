package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"scenecast/ffmpeg"
	"scenecast/logger"
)

// Build-time variables (injected by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

var startTime = time.Now()

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	GoVersion   string    `json:"go_version"`
	FFmpegFound bool      `json:"ffmpeg_available"`
	Uptime      string    `json:"uptime"`
	StartTime   string    `json:"start_time"`
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// HealthHandler provides a basic health check endpoint for load balancers
// and monitoring.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Health check request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodGet {
		logger.Warnf("Invalid method for health endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   time.Now(),
		Version:     version,
		GoVersion:   runtime.Version(),
		FFmpegFound: ffmpeg.Available(),
		Uptime:      formatUptime(time.Since(startTime)),
		StartTime:   startTime.Format("2006-01-02 15:04:05 MST"),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode health response: %v", err)
	}
}

// VersionResponse represents the version information response.
type VersionResponse struct {
	Version       string `json:"version"`
	BuildTime     string `json:"build_time"`
	GoVersion     string `json:"go_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	FFmpegVersion string `json:"ffmpeg_version,omitempty"`
}

// VersionHandler provides version information about the build and the
// ffmpeg binary it drives.
func VersionHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Version request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodGet {
		logger.Warnf("Invalid method for version endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	ffVersion, err := ffmpeg.Version(ctx)
	if err != nil {
		logger.Warnf("Could not determine ffmpeg version: %v", err)
	}

	response := VersionResponse{
		Version:       version,
		BuildTime:     buildTime,
		GoVersion:     runtime.Version(),
		GitCommit:     gitCommit,
		FFmpegVersion: ffVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode version response: %v", err)
	}
}
