package homepage

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoadServices(t *testing.T) {
	path := writeFile(t, "services.yaml", `---
- Infrastructure:
    - AdGuard Home:
        icon: adguard-home.svg
        href: https://adguard.domain.ext
        description: Network-wide ads & trackers blocking DNS server
        widget:
          type: adguard
`)

	config, err := NewLoader(path).LoadServices()
	if err != nil {
		t.Fatalf("LoadServices() error = %v", err)
	}

	if len(config) != 1 {
		t.Fatalf("LoadServices() returned %d groups, want 1", len(config))
	}
	props := config[0]["Infrastructure"][0]["AdGuard Home"]
	if props.Href != "https://adguard.domain.ext" {
		t.Errorf("href = %q", props.Href)
	}
}

func TestLoaderLoadBookmarks(t *testing.T) {
	path := writeFile(t, "bookmarks.yaml", `---
- Developer:
    - Github:
        - abbr: GH
          href: https://github.com/
- Social:
    - Reddit:
        - icon: reddit.png
          href: https://reddit.com/
          description: The front page of the internet
`)

	config, err := NewLoader(path).LoadBookmarks()
	if err != nil {
		t.Fatalf("LoadBookmarks() error = %v", err)
	}

	if len(config) != 2 {
		t.Fatalf("LoadBookmarks() returned %d categories, want 2", len(config))
	}
	if got := config[1]["Social"][0]["Reddit"][0].Description; got != "The front page of the internet" {
		t.Errorf("description = %q", got)
	}
}

func TestLoaderLoadWithTemplateVariables(t *testing.T) {
	path := writeFile(t, "services.yaml", `---
- Infrastructure:
    - AdGuard Home:
        icon: adguard-home.svg
        href: {{HOMEPAGE_VAR_ADGUARD_URL}}
        description: Test
`)

	config, err := NewLoader(path).LoadServices()
	if err != nil {
		t.Fatalf("LoadServices() error = %v", err)
	}

	if got := config[0]["Infrastructure"][0]["AdGuard Home"].Href; got != "" {
		t.Errorf("template variable should be stripped, href = %q", got)
	}
}

func TestLoaderErrors(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).LoadBookmarks(); err == nil {
		t.Error("LoadBookmarks() on a missing file should fail")
	}

	path := writeFile(t, "broken.yaml", "- Developer: [unterminated\n")
	if _, err := NewLoader(path).LoadBookmarks(); err == nil {
		t.Error("LoadBookmarks() on invalid yaml should fail")
	}
}
