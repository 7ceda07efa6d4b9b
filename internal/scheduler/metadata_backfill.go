package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/metadata"
	"github.com/MrSnakeDoc/stash/internal/store/memory"
)

const (
	DefaultBackfillInterval = time.Hour
	DefaultBackfillBatch    = 20
)

// MetadataFetcher resolves page metadata, reporting failures.
type MetadataFetcher interface {
	Fetch(ctx context.Context, url string) (metadata.Metadata, error)
}

// BackfillObserver receives per-run counts by result.
type BackfillObserver interface {
	ObserveBackfill(result string, n int)
}

// BackfillResult summarizes one pass.
type BackfillResult struct {
	Updated   int
	Unchanged int
	Failed    int
}

// MetadataBackfill retries metadata for bookmarks whose title fell back to
// their URL when they were created.
type MetadataBackfill struct {
	bookmarks     *memory.BookmarkStore
	fetcher       MetadataFetcher
	observer      BackfillObserver
	logger        logger.Logger
	interval      time.Duration
	batch         int
	stopCh        chan struct{}
	manualTrigger chan struct{}

	// ids tried in the current sweep over the pending bookmarks
	mu        sync.Mutex
	attempted map[int64]struct{}
}

// NewMetadataBackfill creates a backfill scheduler. manualTrigger may be nil;
// observer may be nil.
func NewMetadataBackfill(
	bookmarks *memory.BookmarkStore,
	fetcher MetadataFetcher,
	observer BackfillObserver,
	log logger.Logger,
	interval time.Duration,
	batch int,
	manualTrigger chan struct{},
) *MetadataBackfill {
	if interval <= 0 {
		interval = DefaultBackfillInterval
	}
	if batch <= 0 {
		batch = DefaultBackfillBatch
	}

	return &MetadataBackfill{
		bookmarks:     bookmarks,
		fetcher:       fetcher,
		observer:      observer,
		logger:        log,
		interval:      interval,
		batch:         batch,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		attempted:     make(map[int64]struct{}),
	}
}

// Start runs a first pass in the background, then one per interval and one
// per manual trigger.
func (mb *MetadataBackfill) Start(ctx context.Context) {
	ticker := time.NewTicker(mb.interval)
	go func() {
		defer ticker.Stop()

		mb.Run(ctx)
		for {
			select {
			case <-ticker.C:
				mb.Run(ctx)
			case <-mb.manualTrigger:
				mb.logger.Info("manual metadata backfill triggered")
				mb.Run(ctx)
			case <-mb.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the scheduler
func (mb *MetadataBackfill) Stop() {
	close(mb.stopCh)
}

// Run processes up to one batch of pending bookmarks, newest first. Each run
// moves past bookmarks already tried in the current sweep, so failures
// cannot starve older ones; the sweep restarts once all have been tried.
func (mb *MetadataBackfill) Run(ctx context.Context) BackfillResult {
	pending := mb.pending()
	if len(pending) == 0 {
		mb.logger.Debug("no bookmarks awaiting metadata")
		return BackfillResult{}
	}

	var res BackfillResult
	for _, b := range pending {
		if ctx.Err() != nil {
			break
		}

		md, err := mb.fetcher.Fetch(ctx, b.URL)
		if err != nil {
			mb.logger.Debug("metadata backfill fetch failed",
				logger.Int64("id", b.ID),
				logger.String("url", b.URL),
				logger.Error(err))
			res.Failed++
			continue
		}

		if mb.apply(b, md) {
			res.Updated++
		} else {
			res.Unchanged++
		}
	}

	mb.logger.Info("metadata backfill completed",
		logger.Int("updated", res.Updated),
		logger.Int("unchanged", res.Unchanged),
		logger.Int("failed", res.Failed))

	if mb.observer != nil {
		mb.observer.ObserveBackfill("updated", res.Updated)
		mb.observer.ObserveBackfill("unchanged", res.Unchanged)
		mb.observer.ObserveBackfill("failed", res.Failed)
	}
	return res
}

func (mb *MetadataBackfill) pending() []domain.Bookmark {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	var all []domain.Bookmark
	seen := make(map[int64]struct{})
	for _, b := range mb.bookmarks.List() {
		if b.NeedsMetadata() {
			all = append(all, b)
			seen[b.ID] = struct{}{}
		}
	}
	for id := range mb.attempted {
		if _, ok := seen[id]; !ok {
			delete(mb.attempted, id)
		}
	}

	out := mb.untried(all)
	if len(out) == 0 && len(all) > 0 {
		clear(mb.attempted)
		out = mb.untried(all)
	}
	for _, b := range out {
		mb.attempted[b.ID] = struct{}{}
	}
	return out
}

func (mb *MetadataBackfill) untried(all []domain.Bookmark) []domain.Bookmark {
	var out []domain.Bookmark
	for _, b := range all {
		if _, ok := mb.attempted[b.ID]; ok {
			continue
		}
		out = append(out, b)
		if len(out) == mb.batch {
			break
		}
	}
	return out
}

// apply patches the title only with a real one and the description only
// when the bookmark has none. The bookmark must still be untouched (same
// URL, still on the fallback title) or the patch is dropped.
func (mb *MetadataBackfill) apply(b domain.Bookmark, md metadata.Metadata) bool {
	var patch domain.BookmarkPatch
	if md.Title != "" && md.Title != b.URL {
		title := md.Title
		patch.Title = &title
	}
	if b.Description == nil && md.Description != nil && *md.Description != "" {
		desc := *md.Description
		patch.Description = &desc
	}
	if patch.Title == nil && patch.Description == nil {
		return false
	}

	untouched := func(cur domain.Bookmark) bool {
		return cur.URL == b.URL && cur.NeedsMetadata() &&
			(patch.Description == nil || cur.Description == nil)
	}
	if _, ok := mb.bookmarks.UpdateIf(b.ID, untouched, patch); !ok {
		mb.logger.Debug("bookmark changed during backfill, skipped",
			logger.Int64("id", b.ID))
		return false
	}
	return true
}
