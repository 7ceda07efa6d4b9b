package memory

import "github.com/MrSnakeDoc/stash/internal/domain"

type (
	NoteStore     = Store[domain.Note, *domain.Note]
	BookmarkStore = Store[domain.Bookmark, *domain.Bookmark]
)

// NoteKind searches title, content and tags; notes surface by most
// recently edited.
var NoteKind = Kind[domain.Note]{
	Name: "notes",
	Fields: []Field[domain.Note]{
		func(n *domain.Note) string { return n.Title },
		func(n *domain.Note) string { return n.Content },
	},
	Order: ByUpdatedAt,
}

// BookmarkKind searches title, description, url and tags; bookmarks
// surface by most recently added.
var BookmarkKind = Kind[domain.Bookmark]{
	Name: "bookmarks",
	Fields: []Field[domain.Bookmark]{
		func(b *domain.Bookmark) string { return b.Title },
		func(b *domain.Bookmark) string {
			if b.Description == nil {
				return ""
			}
			return *b.Description
		},
		func(b *domain.Bookmark) string { return b.URL },
	},
	Order: ByCreatedAt,
}

// NewNoteStore creates an empty note store.
func NewNoteStore(opts ...Option) *NoteStore {
	return New[domain.Note, *domain.Note](NoteKind, opts...)
}

// NewBookmarkStore creates an empty bookmark store.
func NewBookmarkStore(opts ...Option) *BookmarkStore {
	return New[domain.Bookmark, *domain.Bookmark](BookmarkKind, opts...)
}
