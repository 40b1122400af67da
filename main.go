package main

import (
	"net/http"

	"scenecast/config"
	"scenecast/ffmpeg"
	"scenecast/jobs"
	"scenecast/logger"
	"scenecast/render"
	"scenecast/routes"
	"scenecast/timeline"
	"scenecast/transcribe"
)

func main() {
	config.Load()
	logger.Init(config.LogFile())
	defer logger.Close()

	logger.Info("Starting Scenecast server initialization")

	if !ffmpeg.Available() {
		logger.Warn("ffmpeg binary not found in PATH; renders will fail until it is installed")
	}

	logger.Debug("Initializing job database")
	store, err := jobs.OpenStore(config.GetJobsDBPath())
	if err != nil {
		logger.Fatalf("Failed to initialize job store: %v", err)
	}
	defer store.Close()
	logger.Info("Job database initialized successfully")

	service := jobs.NewService(store, config.RenderWorkers())
	defer service.Close()

	// Jobs interrupted by a previous crash cannot resume; fail them now so
	// clients see a terminal state instead of a stuck "processing".
	logger.Info("Scanning for orphaned jobs on startup")
	if err := service.RecoverOrphans(); err != nil {
		logger.Errorf("Failed to recover orphaned jobs: %v", err)
	} else {
		logger.Info("Orphaned job scan completed")
	}

	logger.Info("Starting job cleanup routine")
	service.StartCleanup(config.JobTTL(), config.CleanupInterval())

	whisper := transcribe.NewWhisperCLI(config.WhisperBinary(), config.WhisperModel())
	pipeline := &render.Pipeline{
		Jobs:     service,
		Analyzer: timeline.NewAnalyzer(config.ProbeWorkers(), config.ProbeTimeout()),
		Transcriber: transcribe.NewOrchestrator(
			config.TranscriptionWorkers(),
			config.TranscriptionTimeout(),
			config.SubtitlesEnabled(),
			whisper,
		),
		Encode: ffmpeg.EncodeSettings{
			Preset: config.VideoPreset(),
			CRF:    config.VideoQualityCRF(),
		},
		FFmpegTimeout:   config.FFmpegTimeout(),
		OutputDir:       config.GetOutputDir(),
		DeliveryBackend: config.DeliveryBackend(),
		DeliveryAccess:  config.DeliveryAccessInfo(),
	}

	router := &routes.Router{
		Jobs:      service,
		Pipeline:  pipeline,
		OutputDir: config.GetOutputDir(),
		Secret:    config.TokenSecret(),
	}
	if router.Secret == "" {
		logger.Warn("No token secret configured, API authentication disabled")
	}

	logger.Info("Registering HTTP routes")
	mux := http.NewServeMux()
	router.Register(mux)

	addr := config.ListenAddr()
	logger.Infof("Scenecast server starting on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}
