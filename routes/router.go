// Package routes exposes the HTTP API: render submission, job inspection and
// video download.
package routes

import (
	"net/http"

	"scenecast/auth"
	"scenecast/jobs"
	"scenecast/render"
)

// Router binds handlers to the services they act on. Constructed once in
// main; no package-level state.
type Router struct {
	Jobs      *jobs.Service
	Pipeline  *render.Pipeline
	OutputDir string
	Secret    string
}

// Register attaches every endpoint to mux. Mutating endpoints sit behind
// token verification when a secret is configured; health and version stay
// open for load balancers.
func (rt *Router) Register(mux *http.ServeMux) {
	protected := func(h http.HandlerFunc) http.HandlerFunc {
		return auth.Middleware(rt.Secret, h)
	}

	mux.HandleFunc("/render", protected(rt.RenderHandler))
	mux.HandleFunc("/jobs/status", protected(rt.JobStatusHandler))
	mux.HandleFunc("/jobs/list", protected(rt.JobListHandler))
	mux.HandleFunc("/jobs/stats", protected(rt.JobStatsHandler))
	mux.HandleFunc("/jobs/cancel", protected(rt.CancelJobHandler))
	mux.HandleFunc("/download/", protected(rt.DownloadHandler))
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/version", VersionHandler)
}
