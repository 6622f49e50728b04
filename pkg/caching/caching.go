// Package caching remembers which source documents already produced an
// output, so an interrupted batch can resume without reprocessing
// finished titles.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-based map from source path to finished output path,
// with a TTL so stale entries age out after thresholds change.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates the cache directory if needed.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key hashes the source path to a stable cache filename.
func (c *Cache) key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return fmt.Sprintf("%x", hash)
}

// Get returns the recorded output path for a source document and true
// on a fresh hit. Expired or missing entries report a miss.
func (c *Cache) Get(source string) (string, bool) {
	filePath := filepath.Join(c.path, c.key(source))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return "", false
	}

	if time.Since(info.ModTime()) > c.ttl {
		return "", false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", false
	}

	return string(data), true
}

// Set records the output path produced for a source document.
func (c *Cache) Set(source, outputPath string) error {
	filePath := filepath.Join(c.path, c.key(source))
	if err := os.WriteFile(filePath, []byte(outputPath), 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}
