package routes

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

func TestRegisterAllMountsEveryEndpoint(t *testing.T) {
	r := chi.NewRouter()
	RegisterAll(r, deps.Deps{Logger: logger.Nop()})

	var got []string
	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, method+" "+route)
		return nil
	})

	for _, want := range []string{
		"GET /healthz",
		"GET /readyz",
		"GET /infra",
		"GET /metrics",
		"POST /refresh",
		"GET /api/notes/",
		"POST /api/notes/",
		"GET /api/notes/{id}",
		"PUT /api/notes/{id}",
		"DELETE /api/notes/{id}",
		"GET /api/bookmarks/",
		"POST /api/bookmarks/",
		"GET /api/bookmarks/{id}",
		"PUT /api/bookmarks/{id}",
		"DELETE /api/bookmarks/{id}",
	} {
		assert.Contains(t, got, want)
	}
}
