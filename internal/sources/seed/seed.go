// Package seed loads an optional YAML file of notes and bookmarks into the
// stores at startup.
//
//	notes:
//	  - title: Welcome
//	    content: First note
//	    tags: [intro]
//	    favorite: true
//	bookmarks:
//	  - url: https://go.dev
//	    title: Go
package seed

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

// File is the root of a seed file.
type File struct {
	Notes     []NoteEntry     `yaml:"notes" validate:"dive"`
	Bookmarks []BookmarkEntry `yaml:"bookmarks" validate:"dive"`
}

type NoteEntry struct {
	Title    string   `yaml:"title" validate:"required"`
	Content  string   `yaml:"content"`
	Tags     []string `yaml:"tags"`
	Favorite bool     `yaml:"favorite"`
}

// BookmarkEntry may omit its title; the URL stands in until the metadata
// backfill finds a better one.
type BookmarkEntry struct {
	URL         string   `yaml:"url" validate:"required,url"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Favorite    bool     `yaml:"favorite"`
}

// Load reads and validates a seed file. Any invalid entry fails the whole
// file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	if err := validator.New().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return File{}, fmt.Errorf("invalid seed entry %s: failed %q", fe.Namespace(), fe.Tag())
		}
		return File{}, fmt.Errorf("invalid seed file: %w", err)
	}

	return f, nil
}

// ToNotes maps the note entries to domain notes.
func (f File) ToNotes() []domain.Note {
	out := make([]domain.Note, 0, len(f.Notes))
	for _, e := range f.Notes {
		n := domain.Note{Title: e.Title, Content: e.Content}
		n.Tags = e.Tags
		n.IsFavorite = e.Favorite
		out = append(out, n)
	}
	return out
}

// ToBookmarks maps the bookmark entries to domain bookmarks.
func (f File) ToBookmarks() []domain.Bookmark {
	out := make([]domain.Bookmark, 0, len(f.Bookmarks))
	for _, e := range f.Bookmarks {
		b := domain.Bookmark{Title: e.Title, URL: e.URL}
		if b.Title == "" {
			b.Title = e.URL
		}
		if e.Description != "" {
			desc := e.Description
			b.Description = &desc
		}
		b.Tags = e.Tags
		b.IsFavorite = e.Favorite
		out = append(out, b)
	}
	return out
}

// NoteCreator and BookmarkCreator are satisfied by the memory stores.
type NoteCreator interface {
	Create(domain.Note) domain.Note
}

type BookmarkCreator interface {
	Create(domain.Bookmark) domain.Bookmark
}

// Apply inserts every entry, in file order, and returns the counts.
func Apply(f File, notes NoteCreator, bookmarks BookmarkCreator) (int, int) {
	for _, n := range f.ToNotes() {
		notes.Create(n)
	}
	for _, b := range f.ToBookmarks() {
		bookmarks.Create(b)
	}
	return len(f.Notes), len(f.Bookmarks)
}
