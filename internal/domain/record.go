package domain

import (
	"slices"
	"time"
)

// Record holds the fields shared by every stored entity.
// It is embedded in Note and Bookmark so the JSON shape stays flat.
type Record struct {
	// ID is assigned by the store on creation and never changes.
	ID int64 `json:"id"`

	// Tags keeps insertion order. Duplicates are allowed.
	Tags []string `json:"tags"`

	// IsFavorite marks a record for priority surfacing in the UI.
	IsFavorite bool `json:"isFavorite"`

	// CreatedAt is set once, on creation.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is set on creation and on every successful mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the embedded record to generic code.
func (r *Record) Meta() *Record { return r }

// patchMeta applies the shared part of a partial update.
// A supplied tag list replaces the previous one.
func patchMeta(r *Record, tags *[]string, favorite *bool) {
	if tags != nil {
		r.Tags = slices.Clone(*tags)
		if r.Tags == nil {
			r.Tags = []string{}
		}
	}
	if favorite != nil {
		r.IsFavorite = *favorite
	}
}
