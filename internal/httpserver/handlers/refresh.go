package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// Refresh asks the metadata backfill to run now.
func Refresh(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.BackfillTrigger == nil {
			writeMessage(w, http.StatusServiceUnavailable, "Metadata backfill is disabled")
			return
		}

		select {
		case d.BackfillTrigger <- struct{}{}:
			d.Logger.Info("manual metadata backfill triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeMessage(w, http.StatusAccepted, "Metadata backfill triggered")
		default:
			d.Logger.Warn("metadata backfill already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeMessage(w, http.StatusTooManyRequests, "Metadata backfill already pending, please wait")
		}
	}
}
