package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

// healthzResponse is liveness only; store and cache state live in /infra.
type healthzResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
	UptimeSec float64   `json:"uptime_seconds"`
	Build     buildInfo `json:"build"`
}

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"date,omitempty"`
	GoVersion string `json:"go,omitempty"`
}

// Healthz reports liveness, uptime and build info.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		up := time.Since(d.StartTime)
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:    "ok",
			StartedAt: d.StartTime.UTC(),
			Uptime:    up.Truncate(time.Second).String(),
			UptimeSec: up.Seconds(),
			Build:     build,
		})
	}
}
