package homepage

import (
	"github.com/MrSnakeDoc/stash/internal/domain"
)

// BookmarkStore is the part of the bookmark store the import needs.
type BookmarkStore interface {
	List() []domain.Bookmark
	Create(domain.Bookmark) domain.Bookmark
}

// Import adds bookmarks whose URL is not stored yet and returns how many
// were created.
func Import(store BookmarkStore, bookmarks []domain.Bookmark) int {
	known := make(map[string]bool)
	for _, b := range store.List() {
		known[b.URL] = true
	}

	created := 0
	for _, b := range bookmarks {
		if known[b.URL] {
			continue
		}
		store.Create(b)
		known[b.URL] = true
		created++
	}
	return created
}
