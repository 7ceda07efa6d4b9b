package metadata

import (
	"html"
	"regexp"
	"strings"
)

// Metadata is the best-effort title and description of a page.
type Metadata struct {
	Title string `json:"title"`

	// Description is nil when the page carries no usable meta description.
	Description *string `json:"description"`
}

var (
	titleRe = regexp.MustCompile(`(?is)<title[^>]*>([^<]+)</title>`)

	// name before content
	descNameFirstRe = regexp.MustCompile(
		`(?is)<meta\s+(?:[^>]*?\s)?name\s*=\s*(?:"description"|'description')[^>]*?\scontent\s*=\s*(?:"([^"]*)"|'([^']*)')`)

	// content before name
	descContentFirstRe = regexp.MustCompile(
		`(?is)<meta\s+(?:[^>]*?\s)?content\s*=\s*(?:"([^"]*)"|'([^']*)')[^>]*?\sname\s*=\s*(?:"description"|'description')`)
)

// Extract pulls the page title and meta description out of raw HTML using
// literal pattern matching. It is not a parser: nested tags inside <title>,
// comments and scripts are not understood.
//
// The title falls back to pageURL when missing or blank. Extract never
// panics; the worst case is (pageURL, nil).
func Extract(page, pageURL string) Metadata {
	md := Metadata{Title: pageURL}

	if m := titleRe.FindStringSubmatch(page); m != nil {
		if title := clean(m[1]); title != "" {
			md.Title = title
		}
	}

	md.Description = description(page)
	return md
}

// description returns the content of the first matching meta tag in document
// order, whichever attribute order it uses.
func description(page string) *string {
	a := descNameFirstRe.FindStringSubmatchIndex(page)
	b := descContentFirstRe.FindStringSubmatchIndex(page)

	var loc []int
	switch {
	case a == nil:
		loc = b
	case b == nil:
		loc = a
	case b[0] < a[0]:
		loc = b
	default:
		loc = a
	}
	if loc == nil {
		return nil
	}

	// one group per quote style
	start, end := loc[2], loc[3]
	if start < 0 {
		start, end = loc[4], loc[5]
	}
	desc := clean(page[start:end])
	if desc == "" {
		return nil
	}
	return &desc
}

func clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
