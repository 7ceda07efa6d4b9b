package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/httpserver/mw"
)

func init() { Register(registerOps) }

// registerOps mounts the operational endpoints. When AllowedCIDRS is set
// they answer only to those networks.
func registerOps(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))

		r.Get("/healthz", handlers.Healthz(d))
		r.Get("/readyz", handlers.Readyz(d))
		r.Get("/infra", handlers.Infra(d))
		r.Get("/metrics", handlers.Metrics(d))
		r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/refresh", handlers.Refresh(d))
	})
}
