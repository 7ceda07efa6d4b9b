package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/stash/internal/metadata"
)

// GetMetadata returns the cached metadata for url. A miss is (zero, false, nil).
func (s *Store) GetMetadata(ctx context.Context, url string) (metadata.Metadata, bool, error) {
	data, err := s.client.Get(ctx, MetadataKey(url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return metadata.Metadata{}, false, nil
		}
		return metadata.Metadata{}, false, fmt.Errorf("failed to get cached metadata: %w", err)
	}

	md, err := decodeMetadata(data)
	if err != nil {
		return metadata.Metadata{}, false, err
	}
	return md, true, nil
}

// SetMetadata caches md for url with the store TTL.
func (s *Store) SetMetadata(ctx context.Context, url string, md metadata.Metadata) error {
	data, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := s.client.Set(ctx, MetadataKey(url), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache metadata: %w", err)
	}
	return nil
}

// InvalidateMetadata removes the cached entry for url.
func (s *Store) InvalidateMetadata(ctx context.Context, url string) error {
	if err := s.client.Del(ctx, MetadataKey(url)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate metadata: %w", err)
	}
	return nil
}

// FlushMetadata removes every cached entry and returns how many were deleted.
func (s *Store) FlushMetadata(ctx context.Context) (int, error) {
	deleted := 0
	err := s.scanMetadata(ctx, func(key string) error {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to delete metadata key: %w", err)
		}
		deleted++
		return nil
	})
	return deleted, err
}

// ListMetadata returns the URLs currently cached, in no particular order.
func (s *Store) ListMetadata(ctx context.Context) ([]string, error) {
	var urls []string
	err := s.scanMetadata(ctx, func(key string) error {
		if u, ok := URLFromKey(key); ok {
			urls = append(urls, u)
		}
		return nil
	})
	return urls, err
}

func (s *Store) scanMetadata(ctx context.Context, fn func(key string) error) error {
	iter := s.client.Scan(ctx, 0, KeyPrefixMetadata+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := fn(iter.Val()); err != nil {
			return err
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan metadata keys: %w", err)
	}
	return nil
}

func decodeMetadata(data []byte) (metadata.Metadata, error) {
	var md metadata.Metadata
	if err := json.Unmarshal(data, &md); err != nil {
		return metadata.Metadata{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}
	if md.Title == "" {
		return metadata.Metadata{}, errors.New("cached metadata has no title")
	}
	return md, nil
}
