package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stash/internal/config"
	"github.com/MrSnakeDoc/stash/internal/httpserver"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/metadata"
	"github.com/MrSnakeDoc/stash/internal/metrics"
	"github.com/MrSnakeDoc/stash/internal/redis"
	"github.com/MrSnakeDoc/stash/internal/scheduler"
	"github.com/MrSnakeDoc/stash/internal/sources/homepage"
	"github.com/MrSnakeDoc/stash/internal/sources/seed"
	"github.com/MrSnakeDoc/stash/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/stash/internal/store/redis"
	"github.com/MrSnakeDoc/stash/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	backfill    *scheduler.MetadataBackfill
}

// New wires stores, cache, fetcher, sources and the HTTP server from cfg.
func New(cfg *config.Config) (*App, error) {
	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)
	loggerClient.Debug("configuration loaded", logger.Any("config", cfg.Redacted()))

	notes := memory.NewNoteStore()
	bookmarks := memory.NewBookmarkStore()

	m := metrics.New()
	m.RegisterRecordCount(notes.Kind(), notes.Count)
	m.RegisterRecordCount(bookmarks.Kind(), bookmarks.Count)

	// Redis only backs the metadata cache; without it every lookup fetches.
	var redisClient *goredis.Client
	var cache *redisstore.Store
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, store, err := ConnectCache(context.Background(), cfg, loggerClient.Named("redis"))
		if err != nil {
			loggerClient.Warn("redis unavailable, metadata cache disabled", logger.Error(err))
		} else {
			redisClient, cache = client, store
			loggerClient.Info("Redis initialized successfully",
				logger.Duration("ttl", cache.TTL()))
		}
	} else {
		loggerClient.Info("redis not configured, metadata cache disabled")
	}

	fetchOpts := []metadata.FetcherOption{metadata.WithObserver(m.ObserveLookup)}
	if cache != nil {
		fetchOpts = append(fetchOpts, metadata.WithCache(cache))
	}
	fetcher := metadata.NewFetcher(metadata.Options{
		Timeout:   cfg.MetadataTimeout,
		UserAgent: cfg.MetadataUserAgent,
		MaxBytes:  cfg.MetadataMaxBytes,
	}, loggerClient.Named("metadata"), fetchOpts...)

	sources, err := loadSources(cfg, notes, bookmarks, loggerClient.Named("sources"))
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}

	var backfill *scheduler.MetadataBackfill
	var backfillTrigger chan struct{}
	if cfg.BackfillInterval > 0 {
		backfillTrigger = make(chan struct{}, 1)
		backfill = scheduler.NewMetadataBackfill(
			bookmarks,
			fetcher,
			m,
			loggerClient.Named("backfill"),
			cfg.BackfillInterval,
			cfg.BackfillBatch,
			backfillTrigger,
		)
	} else {
		loggerClient.Info("metadata backfill disabled")
	}

	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		CORSOrigins:     cfg.CORSOrigins,
		RequestTimeout:  cfg.RequestTimeout,
		RateLimitPerMin: cfg.RateLimitPerMin,
		RateLimitBurst:  cfg.RateLimitBurst,
		Notes:           notes,
		Bookmarks:       bookmarks,
		Metadata:        fetcher,
		Validate:        handlers.NewValidator(),
		Metrics:         m,
		BackfillTrigger: backfillTrigger,
		Sources:         sources,
	}
	if cache != nil {
		d.MetadataCache = cache
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg.ListenPort, d),
		redisClient: redisClient,
		backfill:    backfill,
	}, nil
}

// ConnectCache connects to Redis with the configured retry policy and wraps
// the client as a metadata cache.
func ConnectCache(ctx context.Context, cfg *config.Config, log logger.Logger) (*goredis.Client, *redisstore.Store, error) {
	client, err := redis.Connect(ctx, redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, log)
	if err != nil {
		return nil, nil, err
	}
	return client, redisstore.NewStore(client, cfg.MetadataCacheTTL), nil
}

// loadSources seeds the stores once. A configured file that cannot be read
// stops startup.
func loadSources(cfg *config.Config, notes *memory.NoteStore, bookmarks *memory.BookmarkStore, log logger.Logger) (deps.SourceStats, error) {
	var stats deps.SourceStats

	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return stats, fmt.Errorf("failed to load seed file: %w", err)
		}
		stats.SeedFile = cfg.SeedFile
		stats.SeededNotes, stats.SeededBookmarks = seed.Apply(f, notes, bookmarks)
		log.Info("seed file loaded",
			logger.String("file", cfg.SeedFile),
			logger.Int("notes", stats.SeededNotes),
			logger.Int("bookmarks", stats.SeededBookmarks))
	}

	mapper := homepage.NewMapper()

	if cfg.HomepageBookmarkFile != "" {
		parsed, err := homepage.NewLoader(cfg.HomepageBookmarkFile).LoadBookmarks()
		if err != nil {
			return stats, err
		}
		items, err := mapper.MapBookmarks(parsed)
		if err != nil {
			return stats, fmt.Errorf("failed to map homepage bookmarks: %w", err)
		}
		stats.HomepageFiles = append(stats.HomepageFiles, cfg.HomepageBookmarkFile)
		stats.HomepageBookmarks += homepage.Import(bookmarks, items)
	}

	if cfg.HomepageServiceFile != "" {
		parsed, err := homepage.NewLoader(cfg.HomepageServiceFile).LoadServices()
		if err != nil {
			return stats, err
		}
		items, err := mapper.MapServices(parsed)
		if err != nil {
			return stats, fmt.Errorf("failed to map homepage services: %w", err)
		}
		stats.HomepageFiles = append(stats.HomepageFiles, cfg.HomepageServiceFile)
		stats.HomepageBookmarks += homepage.Import(bookmarks, items)
	}

	if len(stats.HomepageFiles) > 0 {
		log.Info("homepage bookmarks imported",
			logger.Int("count", stats.HomepageBookmarks))
	}
	return stats, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Stash v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Stash %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.backfill != nil {
		a.backfill.Start(ctx)
		a.logger.Info("metadata backfill started",
			logger.Duration("interval", a.cfg.BackfillInterval),
			logger.Int("batch", a.cfg.BackfillBatch))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.backfill != nil {
		a.backfill.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Stash stopped cleanly")
	_ = a.logger.Sync()
	return nil
}
