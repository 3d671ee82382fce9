package fetch

import (
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a TTL cache of response bodies on disk, keyed by request URL.
// Entry age is the cache file's mtime; expired or unreadable entries are
// treated as misses. Each external dependency type gets its own Cache so
// TTLs stay independent.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates a cache rooted at dir with the given TTL.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// TTL returns the cache's entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached body for url if present and not expired.
func (c *Cache) Get(url string) (string, bool) {
	path := c.path(url)

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set stores a body for url. Cache write failures are non-fatal for the
// caller; the error is informational.
func (c *Cache) Set(url, body string) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(c.path(url), []byte(body), 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

func (c *Cache) path(url string) string {
	sum := sha1.Sum([]byte(url))
	return filepath.Join(c.dir, fmt.Sprintf("%x.cache", sum[:8]))
}
