package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/stash/internal/store/memory"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeSeed(t, `
notes:
  - title: Welcome
    content: First note
    tags: [intro, Home]
    favorite: true
  - title: Empty
bookmarks:
  - url: https://go.dev
    title: Go
    description: The Go site
  - url: https://pkg.go.dev
`)

	f, err := Load(path)
	require.NoError(t, err)

	notes := memory.NewNoteStore()
	bookmarks := memory.NewBookmarkStore()
	n, b := Apply(f, notes, bookmarks)

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, b)

	welcome, ok := notes.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Welcome", welcome.Title)
	assert.Equal(t, []string{"intro", "Home"}, welcome.Tags)
	assert.True(t, welcome.IsFavorite)

	empty, _ := notes.Get(2)
	assert.Equal(t, "", empty.Content)
	assert.Equal(t, []string{}, empty.Tags)

	gosite, _ := bookmarks.Get(1)
	require.NotNil(t, gosite.Description)
	assert.Equal(t, "The Go site", *gosite.Description)

	pkg, _ := bookmarks.Get(2)
	assert.True(t, pkg.NeedsMetadata(), "untitled bookmarks fall back to their URL")
	assert.Nil(t, pkg.Description)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"note without title", "notes:\n  - content: x\n"},
		{"bookmark without url", "bookmarks:\n  - title: x\n"},
		{"bookmark with bad url", "bookmarks:\n  - url: not a url\n"},
		{"malformed yaml", "notes: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSeed(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	f, err := Load(writeSeed(t, ""))
	require.NoError(t, err)
	assert.Empty(t, f.Notes)
	assert.Empty(t, f.Bookmarks)
}
