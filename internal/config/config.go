package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request budget, covers outbound metadata fetches

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile             string // optional YAML with notes/bookmarks loaded at startup
	HomepageBookmarkFile string // optional Homepage bookmarks.yaml imported at startup
	HomepageServiceFile  string // optional Homepage services.yaml imported at startup

	// Metadata fetching
	MetadataTimeout   time.Duration // outbound fetch timeout (default: 5s)
	MetadataUserAgent string        // empty => browser-like default
	MetadataMaxBytes  int64         // body read limit (default: 1 MiB)
	MetadataCacheTTL  time.Duration // Redis cache TTL (default: 24h)

	BackfillInterval time.Duration // retry metadata for URL-titled bookmarks (0 = disabled)
	BackfillBatch    int           // max bookmarks per backfill run

	// Redis (optional, empty address => metadata cache disabled)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting at startup
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to these networks
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	CORSOrigins     []string // allowed browser origins, "*" for any
	RateLimitPerMin int      // bookmark creations per client per minute
	RateLimitBurst  int
}

// Load reads the configuration from the environment. A .env file (or the one
// named by STASH_ENV_FILE) is applied first without overriding variables
// already set.
func Load() *Config {
	loadDotEnv(getenv("STASH_ENV_FILE", ".env"))

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STASH_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STASH_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STASH_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("STASH_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STASH_PRETTY_LOG", true),

		// Sources
		SeedFile:             getenv("STASH_SEED_FILE", ""),
		HomepageBookmarkFile: getenv("STASH_HOMEPAGE_BOOKMARKS_FILE", ""),
		HomepageServiceFile:  getenv("STASH_HOMEPAGE_SERVICES_FILE", ""),

		// Metadata
		MetadataTimeout:   mustDuration("STASH_METADATA_TIMEOUT", 5*time.Second),
		MetadataUserAgent: getenv("STASH_METADATA_USER_AGENT", ""),
		MetadataMaxBytes:  int64(getenvInt("STASH_METADATA_MAX_BYTES", 1<<20)),
		MetadataCacheTTL:  mustDuration("STASH_METADATA_CACHE_TTL", 24*time.Hour),

		BackfillInterval: mustDuration("STASH_BACKFILL_INTERVAL", time.Hour),
		BackfillBatch:    getenvInt("STASH_BACKFILL_BATCH", 20),

		// Redis settings
		RedisAddr:           getenv("STASH_REDIS_ADDR", ""),
		RedisUser:           getenv("STASH_REDIS_USERNAME", ""),
		RedisPassword:       getenv("STASH_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("STASH_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 10*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 5*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 2*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("STASH_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("STASH_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("STASH_TRUST_PROXY", false),

		CORSOrigins:     splitAndTrim(getenv("STASH_CORS_ORIGINS", "*")),
		RateLimitPerMin: getenvInt("STASH_RATE_LIMIT_PER_MIN", 30),
		RateLimitBurst:  getenvInt("STASH_RATE_LIMIT_BURST", 10),
	}

	cfg.validate()

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// RedisEnabled reports whether a metadata cache should be attempted.
func (c *Config) RedisEnabled() bool { return c.RedisAddr != "" }

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cp := *c
	if cp.RedisPassword != "" {
		cp.RedisPassword = "***REDACTED***"
	}
	if cp.RedisUser != "" {
		cp.RedisUser = "***REDACTED***"
	}
	return cp
}

func (c *Config) validate() {
	if c.RequestTimeout <= c.MetadataTimeout {
		panic(fmt.Sprintf("❌ FATAL: STASH_REQUEST_TIMEOUT (%v) must exceed STASH_METADATA_TIMEOUT (%v)",
			c.RequestTimeout, c.MetadataTimeout))
	}
	if c.MetadataMaxBytes <= 0 {
		panic("❌ FATAL: STASH_METADATA_MAX_BYTES must be > 0")
	}
	if c.BackfillInterval > 0 && c.BackfillBatch <= 0 {
		panic("❌ FATAL: STASH_BACKFILL_BATCH must be > 0 when STASH_BACKFILL_INTERVAL is set")
	}
	if c.RateLimitPerMin <= 0 || c.RateLimitBurst <= 0 {
		panic("❌ FATAL: STASH_RATE_LIMIT_PER_MIN and STASH_RATE_LIMIT_BURST must be > 0")
	}
	if c.RedisUser != "" && c.RedisPassword == "" {
		panic("❌ FATAL: STASH_REDIS_PASSWORD is required when STASH_REDIS_USERNAME is set")
	}
}

func loadDotEnv(path string) {
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(fmt.Sprintf("❌ FATAL: cannot load env file %s: %v", path, err))
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
		}
		return i
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid boolean value for %s: %s", key, v))
		}
		return b
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Invalid duration value for %s: %s", key, v))
		}
		return d
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
