package redis

import "strings"

const (
	// KeyPrefixMetadata is the prefix for cached page metadata
	KeyPrefixMetadata = "stash:metadata:"
)

// MetadataKey returns the Redis key for the metadata of a URL.
func MetadataKey(url string) string {
	return KeyPrefixMetadata + url
}

// URLFromKey returns the URL a metadata key was built from.
func URLFromKey(key string) (string, bool) {
	url, ok := strings.CutPrefix(key, KeyPrefixMetadata)
	return url, ok && url != ""
}
