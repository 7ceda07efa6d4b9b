package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/httpserver/mw"
)

func init() { Register(registerNotes) }

func registerNotes(r chi.Router, d deps.Deps) {
	r.Route("/api/notes", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/", handlers.ListNotes(d))
		r.Post("/", handlers.CreateNote(d))
		r.Get("/{id}", handlers.GetNote(d))
		r.Put("/{id}", handlers.UpdateNote(d))
		r.Delete("/{id}", handlers.DeleteNote(d))
	})
}
