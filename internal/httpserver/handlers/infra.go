package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Records *int   `json:"records,omitempty"`
	Source  string `json:"source,omitempty"`
	Loaded  *int   `json:"loaded,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of each component.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes := d.Notes.Count()
		bookmarks := d.Bookmarks.Count()

		components := map[string]componentStatus{
			"notes":          {OK: true, Records: &notes},
			"bookmarks":      {OK: true, Records: &bookmarks},
			"metadata_cache": checkCache(r.Context(), d.MetadataCache),
			"backfill": {
				OK:   true,
				Mode: enabled(d.BackfillTrigger != nil),
			},
		}
		if d.Sources.SeedFile != "" {
			loaded := d.Sources.SeededNotes + d.Sources.SeededBookmarks
			components["seed"] = componentStatus{OK: true, Source: d.Sources.SeedFile, Loaded: &loaded}
		}
		if len(d.Sources.HomepageFiles) > 0 {
			loaded := d.Sources.HomepageBookmarks
			components["homepage"] = componentStatus{OK: true, Source: strings.Join(d.Sources.HomepageFiles, ","), Loaded: &loaded}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

// determineMode is "degraded" when a configured cache is unreachable.
func determineMode(components map[string]componentStatus) string {
	if c, ok := components["metadata_cache"]; ok && !c.OK && c.Mode != "disabled" {
		return "degraded"
	}
	return "optimal"
}

func checkCache(ctx context.Context, cache deps.Pinger) componentStatus {
	if cache == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "every lookup fetches the page",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := cache.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "every lookup fetches the page",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: "redis"}
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
