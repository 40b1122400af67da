package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"scenecast/logger"
	"scenecast/models"
)

// RenderResponse acknowledges an accepted render request.
type RenderResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// RenderHandler accepts a render configuration, creates a job and queues it.
// The response is immediate; progress is tracked through the jobs endpoints.
func (rt *Router) RenderHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Render request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodPost {
		logger.Warnf("Invalid method for render endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cfg models.VideoConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		logger.Warnf("Invalid render request body: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Warnf("Render config rejected: %v", err)
		http.Error(w, fmt.Sprintf("Invalid configuration: %v", err), http.StatusBadRequest)
		return
	}

	jobID, err := rt.Jobs.Create(&cfg)
	if err != nil {
		logger.Errorf("Failed to create job: %v", err)
		http.Error(w, "Failed to create job", http.StatusInternalServerError)
		return
	}

	rt.Jobs.Submit(jobID, func(ctx context.Context) (*models.RenderResult, error) {
		return rt.Pipeline.Run(ctx, jobID, &cfg)
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(RenderResponse{JobID: jobID, Status: string(models.JobPending)}); err != nil {
		logger.Errorf("Failed to encode render response: %v", err)
	}
}
