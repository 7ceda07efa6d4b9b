package metadata

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/utils"
)

// DefaultUserAgent identifies as a desktop browser; many sites serve an
// empty shell or a 403 to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// drainLimit bounds how much of an unread body is discarded on close.
const drainLimit = 4 << 10

// Lookup outcomes reported to the observer.
const (
	OutcomeCacheHit = "cache_hit"
	OutcomeFetched  = "fetched"
	OutcomeFailed   = "failed"
)

// Cache stores successful extractions keyed by URL.
type Cache interface {
	GetMetadata(ctx context.Context, url string) (Metadata, bool, error)
	SetMetadata(ctx context.Context, url string, md Metadata) error
}

// Options tune the outbound request.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
}

// Fetcher downloads pages and runs Extract on them.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64

	cache   Cache
	observe func(outcome string)
	log     logger.Logger

	sf singleflight.Group
}

// FetcherOption configures optional collaborators.
type FetcherOption func(*Fetcher)

// WithCache enables the extraction cache.
func WithCache(c Cache) FetcherOption {
	return func(f *Fetcher) { f.cache = c }
}

// WithObserver registers a callback invoked once per Lookup with its outcome.
func WithObserver(fn func(outcome string)) FetcherOption {
	return func(f *Fetcher) { f.observe = fn }
}

// WithHTTPClient replaces the default client (tests).
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher builds a Fetcher, filling zero Options with defaults.
func NewFetcher(opts Options, log logger.Logger, fopts ...FetcherOption) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 1 << 20
	}

	f := &Fetcher{
		client:    newClient(opts.Timeout),
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		observe:   func(string) {},
		log:       log,
	}
	for _, o := range fopts {
		o(f)
	}
	return f
}

func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   timeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 5 {
				return errors.New("stopped after 5 redirects")
			}
			return nil
		},
	}
}

// Lookup returns the metadata of rawURL. It never fails: any fetch problem
// is logged and yields (rawURL, nil).
func (f *Fetcher) Lookup(ctx context.Context, rawURL string) Metadata {
	md, err := f.Fetch(ctx, rawURL)
	if err != nil {
		f.log.Warn("metadata lookup failed, falling back to url",
			logger.String("url", rawURL),
			logger.Error(err),
		)
		return Metadata{Title: rawURL}
	}
	return md
}

// Fetch is Lookup with the failure surfaced. Concurrent calls for the same
// URL share one request.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Metadata, error) {
	if f.cache != nil {
		md, ok, err := f.cache.GetMetadata(ctx, rawURL)
		if err != nil {
			f.log.Debug("metadata cache read failed", logger.String("url", rawURL), logger.Error(err))
		}
		if ok {
			f.observe(OutcomeCacheHit)
			return md, nil
		}
	}

	// The shared request outlives any single caller; the client timeout
	// still bounds it.
	ch := f.sf.DoChan(rawURL, func() (any, error) {
		shared := context.WithoutCancel(ctx)
		md, err := f.fetch(shared, rawURL)
		if err == nil && f.cache != nil {
			if err := f.cache.SetMetadata(shared, rawURL, md); err != nil {
				f.log.Debug("metadata cache write failed", logger.String("url", rawURL), logger.Error(err))
			}
		}
		return md, err
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		f.observe(OutcomeFailed)
		return Metadata{}, errors.Wrap(ctx.Err(), "fetch")
	case res = <-ch:
	}
	if res.Err != nil {
		f.observe(OutcomeFailed)
		return Metadata{}, res.Err
	}
	f.observe(OutcomeFetched)
	return res.Val.(Metadata), nil
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (Metadata, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "parse url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Metadata{}, errors.Errorf("unsupported scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "build request")
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return Metadata{}, errors.Wrap(err, "fetch")
	}
	defer utils.DrainClose(resp.Body, drainLimit)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Metadata{}, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return Metadata{}, errors.Wrap(err, "read body")
	}

	md := Extract(string(body), rawURL)
	f.log.Debug("metadata fetched",
		logger.String("url", rawURL),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(body)),
		logger.Duration("took", time.Since(start)),
	)
	return md, nil
}
