package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/stash/internal/logger"
)

// recordReader is the read side shared by the note and bookmark stores.
type recordReader[T any] interface {
	Get(id int64) (T, bool)
	List() []T
	Search(query string) []T
	FilterByTag(tag string) []T
	Favorites() []T
}

type recordDeleter interface {
	Delete(id int64) bool
}

// listRecords picks one query by precedence: search, then tag, then
// favorites=true, then everything.
func listRecords[T any](s recordReader[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var out []T
		switch {
		case q.Get("search") != "":
			out = s.Search(q.Get("search"))
		case q.Get("tag") != "":
			out = s.FilterByTag(q.Get("tag"))
		case q.Get("favorites") == "true":
			out = s.Favorites()
		default:
			out = s.List()
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getRecord[T any](s recordReader[T], noun string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid "+lower(noun)+" id")
			return
		}
		rec, found := s.Get(id)
		if !found {
			writeMessage(w, http.StatusNotFound, noun+" not found")
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func deleteRecord(s recordDeleter, noun string, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid "+lower(noun)+" id")
			return
		}
		if !s.Delete(id) {
			writeMessage(w, http.StatusNotFound, noun+" not found")
			return
		}
		log.Debug("record deleted", logger.String("kind", lower(noun)), logger.Int64("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func lower(noun string) string { return strings.ToLower(noun) }
