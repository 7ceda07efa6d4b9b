package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultMetadataTTL is used when the configured TTL is not positive.
const DefaultMetadataTTL = 24 * time.Hour

// Store is the Redis-backed metadata cache. Records themselves are never
// written to Redis.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStore creates a new Redis store
func NewStore(client redis.Cmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultMetadataTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// TTL returns the expiry applied to cached entries.
func (s *Store) TTL() time.Duration { return s.ttl }

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
