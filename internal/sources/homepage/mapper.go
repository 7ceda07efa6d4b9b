package homepage

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

// Mapper converts Homepage entries into bookmarks. Each bookmark is tagged
// with its Homepage category (or service group) and "homepage".
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapBookmarks converts bookmarks.yaml content. Entries without a usable
// http(s) href are skipped; a URL seen twice is kept once.
func (m *Mapper) MapBookmarks(config BookmarksConfig) ([]domain.Bookmark, error) {
	var out []domain.Bookmark
	seen := make(map[string]bool)

	for _, group := range config {
		for _, category := range sortedKeys(group) {
			for _, item := range group[category] {
				for _, name := range sortedKeys(item) {
					entries := item[name]
					if len(entries) == 0 {
						continue
					}
					entry := entries[0]

					b, ok := newBookmark(name, entry.Href, entry.Description, category)
					if !ok || seen[b.URL] {
						continue
					}
					seen[b.URL] = true
					out = append(out, b)
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in homepage config")
	}
	return out, nil
}

// MapServices converts services.yaml content the same way.
func (m *Mapper) MapServices(config ServicesConfig) ([]domain.Bookmark, error) {
	var out []domain.Bookmark
	seen := make(map[string]bool)

	for _, group := range config {
		for _, groupName := range sortedKeys(group) {
			for _, item := range group[groupName] {
				for _, name := range sortedKeys(item) {
					props := item[name]

					b, ok := newBookmark(name, props.Href, props.Description, groupName)
					if !ok || seen[b.URL] {
						continue
					}
					seen[b.URL] = true
					out = append(out, b)
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid services found in homepage config")
	}
	return out, nil
}

func newBookmark(name, href, description, category string) (domain.Bookmark, bool) {
	href = strings.TrimSpace(href)
	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Bookmark{}, false
	}

	title := strings.TrimSpace(name)
	if title == "" {
		title = href
	}

	b := domain.Bookmark{Title: title, URL: href}
	if desc := strings.TrimSpace(description); desc != "" {
		b.Description = &desc
	}
	b.Tags = []string{"homepage"}
	if c := strings.TrimSpace(category); c != "" {
		b.Tags = append(b.Tags, c)
	}
	return b, true
}

// sortedKeys gives map iteration a stable order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
