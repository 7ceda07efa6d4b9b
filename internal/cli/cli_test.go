package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/stash/internal/metadata"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExtractFromStdin(t *testing.T) {
	out, err := run(t,
		`<html><head><title>Example</title><meta name="description" content="Hi"></head></html>`,
		"extract", "--url", "https://example.com")
	require.NoError(t, err)

	var md metadata.Metadata
	require.NoError(t, json.Unmarshal([]byte(out), &md))
	assert.Equal(t, "Example", md.Title)
	require.NotNil(t, md.Description)
	assert.Equal(t, "Hi", *md.Description)
}

func TestExtractFromFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<html><title>never closed"), 0o644))

	out, err := run(t, "", "extract", path, "--url", "https://example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"https://example.com","description":null}`, out)
}

func TestExtractMissingFile(t *testing.T) {
	_, err := run(t, "", "extract", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`<title>Served</title>`))
	}))
	defer srv.Close()

	out, err := run(t, "", "fetch", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Served"`)

	_, err = run(t, "", "fetch", srv.URL+"/gone")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "stash "), out)
}

func TestCacheNeedsRedis(t *testing.T) {
	t.Setenv("STASH_ENV_FILE", filepath.Join(t.TempDir(), "none.env"))
	t.Setenv("STASH_REDIS_ADDR", "")

	_, err := run(t, "", "cache", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STASH_REDIS_ADDR")
}
