package domain

// Note is a free-form text record.
type Note struct {
	Record

	Title   string `json:"title"`
	Content string `json:"content"`
}

// NotePatch is a partial update for a note.
// Nil fields are left untouched.
type NotePatch struct {
	Title      *string
	Content    *string
	Tags       *[]string
	IsFavorite *bool
}

// Apply merges the supplied fields over n.
func (p NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	patchMeta(&n.Record, p.Tags, p.IsFavorite)
}
