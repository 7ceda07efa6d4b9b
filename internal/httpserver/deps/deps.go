package deps

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/metadata"
	"github.com/MrSnakeDoc/stash/internal/metrics"
	"github.com/MrSnakeDoc/stash/internal/store/memory"
)

// MetadataLookup resolves page metadata; it must never fail.
type MetadataLookup interface {
	Lookup(ctx context.Context, url string) metadata.Metadata
}

// Pinger reports the health of an optional backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SourceStats describes what was loaded at startup.
type SourceStats struct {
	SeedFile          string
	SeededNotes       int
	SeededBookmarks   int
	HomepageFiles     []string
	HomepageBookmarks int
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts    []string      // Host headers allowed on /api and /refresh
	AllowedCIDRS    []string      // networks allowed on operational endpoints
	TrustProxy      bool          // true if running behind a trusted reverse proxy
	CORSOrigins     []string      // browser origins allowed to call /api
	RequestTimeout  time.Duration // per-request timeout
	RateLimitPerMin int           // bookmark creations per client per minute
	RateLimitBurst  int

	Notes     *memory.NoteStore
	Bookmarks *memory.BookmarkStore
	Metadata  MetadataLookup
	Validate  *validator.Validate
	Metrics   *metrics.Metrics

	MetadataCache   Pinger        // nil when Redis is disabled
	BackfillTrigger chan struct{} // nil when the backfill is disabled
	Sources         SourceStats
}
