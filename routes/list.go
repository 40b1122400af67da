package routes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"scenecast/logger"
	"scenecast/models"
)

// JobListResponse wraps a page of job summaries.
type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Count int          `json:"count"`
}

// JobListHandler lists jobs newest first. Optional query parameters: status
// to filter, limit to cap the page size.
func (rt *Router) JobListHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Job list request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodGet {
		logger.Warnf("Invalid method for list endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := models.JobStatus(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		logger.Warnf("Invalid status filter: %s", status)
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	list, err := rt.Jobs.List(status, limit)
	if err != nil {
		logger.Errorf("Failed to list jobs: %v", err)
		http.Error(w, "Failed to list jobs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(JobListResponse{Jobs: list, Count: len(list)}); err != nil {
		logger.Errorf("Failed to encode list response: %v", err)
	}
}

// JobStatsHandler reports aggregate counts and worker utilization.
func (rt *Router) JobStatsHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Job stats request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodGet {
		logger.Warnf("Invalid method for stats endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stats, err := rt.Jobs.Statistics()
	if err != nil {
		logger.Errorf("Failed to compute statistics: %v", err)
		http.Error(w, "Failed to compute statistics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		logger.Errorf("Failed to encode stats response: %v", err)
	}
}
