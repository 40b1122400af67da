package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"scenecast/logger"
)

// DownloadHandler serves a rendered video by id from the output directory.
func (rt *Router) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	logger.Debugf("Download request: method=%s, path=%s, remoteAddr=%s", r.Method, r.URL.Path, r.RemoteAddr)

	if r.Method != http.MethodGet {
		logger.Warnf("Invalid method for download endpoint: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	videoID := strings.TrimPrefix(r.URL.Path, "/download/")
	if videoID == "" || strings.ContainsAny(videoID, "/\\.") {
		logger.Warnf("Rejected download path: %s", r.URL.Path)
		http.Error(w, "Invalid video id", http.StatusBadRequest)
		return
	}

	path := filepath.Join(rt.OutputDir, videoID+".mp4")
	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="`+videoID+`.mp4"`)
	http.ServeFile(w, r, path)
}
