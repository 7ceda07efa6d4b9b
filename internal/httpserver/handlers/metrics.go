package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

// Metrics serves the Prometheus registry.
func Metrics(d deps.Deps) http.HandlerFunc {
	if d.Metrics == nil {
		return func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusNotFound, "Metrics are disabled")
		}
	}
	return d.Metrics.Handler().ServeHTTP
}
