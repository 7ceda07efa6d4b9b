package domain

// Bookmark represents a saved external URL.
type Bookmark struct {
	Record

	// Title is required. When the caller omits it, it is filled from the
	// page metadata, falling back to the URL itself.
	Title string `json:"title"`

	// URL is the absolute address of the bookmarked page.
	// Example: https://go.dev/doc/effective_go
	URL string `json:"url"`

	// Description is optional. Nil means absent, which is not the same
	// thing as an empty string.
	Description *string `json:"description"`
}

// NeedsMetadata reports whether the title is still the URL fallback,
// meaning page metadata was never resolved for this bookmark.
func (b *Bookmark) NeedsMetadata() bool {
	return b.Title == b.URL
}

// BookmarkPatch is a partial update for a bookmark.
// Nil fields are left untouched.
type BookmarkPatch struct {
	Title      *string
	URL        *string
	Tags       *[]string
	IsFavorite *bool

	// Description replaces the current value when set.
	// A pointer to an empty string clears it.
	Description *string
}

// Apply merges the supplied fields over b.
func (p BookmarkPatch) Apply(b *Bookmark) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.URL != nil {
		b.URL = *p.URL
	}
	if p.Description != nil {
		if *p.Description == "" {
			b.Description = nil
		} else {
			d := *p.Description
			b.Description = &d
		}
	}
	patchMeta(&b.Record, p.Tags, p.IsFavorite)
}
