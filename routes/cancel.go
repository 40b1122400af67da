package routes

import (
	"errors"
	"fmt"
	"net/http"

	"scenecast/jobs"
	"scenecast/logger"
)

// CancelJobHandler requests cancellation of a pending or processing job.
// Terminal jobs return 409; cancellation of an in-flight render takes effect
// at the next pipeline stage boundary.
func (rt *Router) CancelJobHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Cancel job request: method=%s, remoteAddr=%s", r.Method, r.RemoteAddr)

	if r.Method != http.MethodDelete {
		logger.Warnf("Invalid method for cancel endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		logger.Warn("Missing id parameter in cancel request")
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	if _, err := rt.Jobs.Get(id); err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			http.Error(w, fmt.Sprintf("Job with id %s not found", id), http.StatusNotFound)
			return
		}
		logger.Errorf("Failed to load job %s: %v", id, err)
		http.Error(w, "Failed to load job", http.StatusInternalServerError)
		return
	}

	logger.Infof("Attempting to cancel job: %s", id)
	if !rt.Jobs.Cancel(id) {
		http.Error(w, "Cannot cancel job in terminal state", http.StatusConflict)
		return
	}

	logger.Infof("Job cancelled successfully: %s", id)
	w.WriteHeader(http.StatusNoContent)
}
