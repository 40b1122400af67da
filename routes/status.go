package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"scenecast/jobs"
	"scenecast/logger"
)

// JobStatusHandler returns the full status record of one job by id.
func (rt *Router) JobStatusHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Job status request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodGet {
		logger.Warnf("Invalid method for status endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		logger.Warn("Missing id parameter in status request")
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	job, err := rt.Jobs.Get(id)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			logger.Warnf("Job not found: %s", id)
			http.Error(w, fmt.Sprintf("Job with id %s not found", id), http.StatusNotFound)
			return
		}
		logger.Errorf("Failed to load job %s: %v", id, err)
		http.Error(w, "Failed to load job", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(job); err != nil {
		logger.Errorf("Failed to encode status response: %v", err)
	}
}
