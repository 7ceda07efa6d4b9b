package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// Registrar mounts one group of routes. Each routes file adds itself from
// init(), so server.go never lists endpoints.
type Registrar func(r chi.Router, d deps.Deps)

var registry []Registrar

// Register adds a registrar. Access middlewares are applied inside the
// registrar, next to the routes they guard.
func Register(reg Registrar) {
	registry = append(registry, reg)
}

// RegisterAll mounts every registered group, then logs the resulting table
// at debug level. Called once per router from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry {
		reg(r, d)
	}

	_ = chi.Walk(r, func(method, route string, _ http.Handler, mws ...func(http.Handler) http.Handler) error {
		d.Logger.Debug("route registered",
			logger.String("method", method),
			logger.String("route", strings.TrimSuffix(route, "/*")),
			logger.Int("middlewares", len(mws)))
		return nil
	})
}
