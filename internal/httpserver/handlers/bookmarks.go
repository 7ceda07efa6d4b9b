package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

type bookmarkCreateRequest struct {
	Title       *string  `json:"title"`
	URL         *string  `json:"url" validate:"required,url"`
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
	IsFavorite  *bool    `json:"isFavorite"`
}

type bookmarkUpdateRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1"`
	URL         *string   `json:"url" validate:"omitempty,url"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	IsFavorite  *bool     `json:"isFavorite"`
}

func (req bookmarkUpdateRequest) patch() domain.BookmarkPatch {
	return domain.BookmarkPatch{
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Tags:        req.Tags,
		IsFavorite:  req.IsFavorite,
	}
}

// ListBookmarks returns bookmarks filtered by the search, tag or favorites query.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return listRecords[domain.Bookmark](d.Bookmarks)
}

// GetBookmark returns one bookmark by id.
func GetBookmark(d deps.Deps) http.HandlerFunc {
	return getRecord[domain.Bookmark](d.Bookmarks, "Bookmark")
}

// CreateBookmark fills a missing title (and a missing description) from the
// page itself before storing. The lookup never fails; at worst the title
// becomes the URL.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookmarkCreateRequest
		if err := decode(w, r, d.Validate, &req); err != nil {
			writeDecodeError(w, err, "Failed to create bookmark")
			return
		}

		b := domain.Bookmark{URL: *req.URL}
		if req.Title != nil {
			b.Title = *req.Title
		}
		if req.Description != nil && *req.Description != "" {
			desc := *req.Description
			b.Description = &desc
		}
		b.Tags = req.Tags
		if req.IsFavorite != nil {
			b.IsFavorite = *req.IsFavorite
		}

		if b.Title == "" {
			md := d.Metadata.Lookup(r.Context(), b.URL)
			b.Title = md.Title
			if b.Description == nil && md.Description != nil {
				b.Description = md.Description
			}
			d.Logger.Debug("bookmark title filled from page",
				logger.String("url", b.URL),
				logger.Bool("fallback", b.NeedsMetadata()))
		}

		created := d.Bookmarks.Create(b)
		d.Logger.Debug("bookmark created", logger.Int64("id", created.ID))
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateBookmark applies a partial update. Metadata is never refetched.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := idParam(r)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Invalid bookmark id")
			return
		}

		var req bookmarkUpdateRequest
		if err := decode(w, r, d.Validate, &req); err != nil {
			writeDecodeError(w, err, "Failed to update bookmark")
			return
		}

		updated, found := d.Bookmarks.Update(id, req.patch())
		if !found {
			writeMessage(w, http.StatusNotFound, "Bookmark not found")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// DeleteBookmark removes a bookmark.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return deleteRecord(d.Bookmarks, "Bookmark", d.Logger)
}
