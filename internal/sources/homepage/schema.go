package homepage

// BookmarkEntry represents a single bookmark entry in bookmarks.yaml
type BookmarkEntry struct {
	Icon        string `yaml:"icon"`
	Abbr        string `yaml:"abbr"`
	Href        string `yaml:"href"`
	Description string `yaml:"description"`
}

// BookmarksConfig is the root structure for bookmarks.yaml:
// - Category: [ - Name: [ { icon, abbr, href } ] ]
// Each bookmark name maps to a list holding a single entry.
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

// ServicesConfig is the root structure for services.yaml:
// - Group: [ - Name: { href, icon, description, ... } ]
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps keeps the service fields a bookmark can use. Widgets,
// monitors and the rest are ignored.
type ServiceProps struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}
