package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

type noteCreateRequest struct {
	Title      *string  `json:"title" validate:"required,min=1"`
	Content    *string  `json:"content" validate:"required"`
	Tags       []string `json:"tags"`
	IsFavorite *bool    `json:"isFavorite"`
}

type noteUpdateRequest struct {
	Title      *string   `json:"title" validate:"omitempty,min=1"`
	Content    *string   `json:"content"`
	Tags       *[]string `json:"tags"`
	IsFavorite *bool     `json:"isFavorite"`
}

func (req noteUpdateRequest) patch() domain.NotePatch {
	return domain.NotePatch{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		IsFavorite: req.IsFavorite,
	}
}

// ListNotes returns notes filtered by the search, tag or favorites query.
func ListNotes(d deps.Deps) http.HandlerFunc {
	return listRecords[domain.Note](d.Notes)
}

// GetNote returns one note by id.
func GetNote(d deps.Deps) http.HandlerFunc {
	return getRecord[domain.Note](d.Notes, "Note")
}

// CreateNote validates and stores a new note.
func CreateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req noteCreateRequest
		if err := decode(w, r, d.Validate, &req); err != nil {
			writeDecodeError(w, err, "Failed to create note")
			return
		}

		note := domain.Note{
			Title:   *req.Title,
			Content: *req.Content,
		}
		note.Tags = req.Tags
		if req.IsFavorite != nil {
			note.IsFavorite = *req.IsFavorite
		}

		created := d.Notes.Create(note)
		d.Logger.Debug("note created", logger.Int64("id", created.ID))
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateNote applies a partial update to a note.
func UpdateNote(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid note id")
			return
		}

		var req noteUpdateRequest
		if err := decode(w, r, d.Validate, &req); err != nil {
			writeDecodeError(w, err, "Failed to update note")
			return
		}

		updated, found := d.Notes.Update(id, req.patch())
		if !found {
			writeMessage(w, http.StatusNotFound, "Note not found")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteNote removes a note.
func DeleteNote(d deps.Deps) http.HandlerFunc {
	return deleteRecord(d.Notes, "Note", d.Logger)
}
