// Package cache stores per-file heuristic insights on disk, keyed by
// path and validated by a BLAKE3 hash of the file content.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/zeebo/blake3"

	"github.com/panbanda/waypoint/pkg/analyzer/heuristic"
)

// schemaVersion is mixed into every key so stale insights from an older
// rule set are never returned.
const schemaVersion = "insight/v1"

// Cache provides file-based caching of FileInsights. A disabled Cache
// misses on every lookup and drops every write.
type Cache struct {
	dir     string
	ttl     time.Duration
	enabled bool
	now     func() time.Time
}

// Entry is the on-disk form of one cached insight.
type Entry struct {
	Hash      string                `json:"hash"`
	Timestamp time.Time             `json:"timestamp"`
	Insight   heuristic.FileInsight `json:"insight"`
}

// New creates a new cache instance.
func New(dir string, ttlHours int, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false, now: time.Now}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &Cache{
		dir:     dir,
		ttl:     time.Duration(ttlHours) * time.Hour,
		enabled: true,
		now:     time.Now,
	}, nil
}

// Enabled reports whether lookups can hit.
func (c *Cache) Enabled() bool {
	return c != nil && c.enabled
}

// HashContent computes a BLAKE3 hash of file content as a hex string.
func HashContent(content string) string {
	hash := blake3.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// Get returns the insight cached for path if its content hash matches
// and it has not expired. Corrupt, stale and expired entries are removed
// and reported as misses.
func (c *Cache) Get(path, hash string) (heuristic.FileInsight, bool) {
	if !c.Enabled() {
		return heuristic.FileInsight{}, false
	}

	data, err := os.ReadFile(c.keyPath(path))
	if err != nil {
		return heuristic.FileInsight{}, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil ||
		entry.Hash != hash ||
		(c.ttl > 0 && c.now().Sub(entry.Timestamp) > c.ttl) {
		_ = c.Invalidate(path)
		return heuristic.FileInsight{}, false
	}
	return entry.Insight, true
}

// Put stores the insight for path under the given content hash.
// The entry is written to a temporary file and renamed into place.
func (c *Cache) Put(path, hash string, fi heuristic.FileInsight) error {
	if !c.Enabled() {
		return nil
	}

	data, err := json.Marshal(Entry{Hash: hash, Timestamp: c.now(), Insight: fi})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.keyPath(path))
}

// Invalidate removes the entry for path.
func (c *Cache) Invalidate(path string) error {
	if !c.Enabled() {
		return nil
	}
	err := os.Remove(c.keyPath(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.Enabled() {
		return nil
	}
	return os.RemoveAll(c.dir)
}

// keyPath converts a file path to a cache entry path.
func (c *Cache) keyPath(path string) string {
	hash := blake3.Sum256([]byte(schemaVersion + "\x00" + path))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".json")
}

// Stats returns cache statistics.
type Stats struct {
	Entries   int           `json:"entries"`
	TotalSize int64         `json:"total_size"`
	OldestAge time.Duration `json:"oldest_age"`
	NewestAge time.Duration `json:"newest_age"`
}

// GetStats returns statistics about the cache.
func (c *Cache) GetStats() (*Stats, error) {
	if !c.Enabled() {
		return &Stats{}, nil
	}

	stats := &Stats{}
	var oldest, newest time.Time

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.TotalSize += info.Size()

		modTime := info.ModTime()
		if oldest.IsZero() || modTime.Before(oldest) {
			oldest = modTime
		}
		if newest.IsZero() || modTime.After(newest) {
			newest = modTime
		}
	}

	if !oldest.IsZero() {
		stats.OldestAge = c.now().Sub(oldest)
	}
	if !newest.IsZero() {
		stats.NewestAge = c.now().Sub(newest)
	}
	return stats, nil
}
