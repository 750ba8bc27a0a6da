package tableio

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"salespulse/pkg/contracts/domain"
)

// Cache wraps a Loader with an in-memory table cache keyed by file path.
// An entry is valid while the file's modification time and size are
// unchanged. Concurrent loads of the same path are collapsed into one
// read via singleflight.
//
// Tables returned from the cache are shared; callers must treat them as
// read-only and Clone before mutating.
type Cache struct {
	loader *Loader
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	table   domain.Table
	modTime time.Time
	size    int64
}

// NewCache creates a cache around the given loader
func NewCache(loader *Loader, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		loader:  loader,
		logger:  logger.With(slog.String("component", "table_cache")),
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the table for path, loading it on first use or when the
// file changed on disk since the cached read.
func (c *Cache) Get(path string) (domain.Table, error) {
	table, _, err := c.GetFresh(path)
	return table, err
}

// GetFresh behaves like Get and additionally reports whether the table
// was read from disk by this call rather than served from the cache.
func (c *Cache) GetFresh(path string) (domain.Table, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Table{}, false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return domain.Table{}, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		c.logger.Debug("cache hit", slog.String("path", path), slog.Int("rows", entry.table.Len()))
		return entry.table, false, nil
	}

	v, err, shared := c.group.Do(path, func() (interface{}, error) {
		table, err := c.loader.Load(path)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[path] = cacheEntry{table: table, modTime: info.ModTime(), size: info.Size()}
		c.mu.Unlock()
		return table, nil
	})
	if err != nil {
		return domain.Table{}, false, err
	}

	c.logger.Info("cache reload",
		slog.String("path", path),
		slog.Bool("shared", shared),
		slog.Time("mod_time", info.ModTime()))

	return v.(domain.Table), true, nil
}

// Invalidate drops the cached entry for path, forcing the next Get to
// re-read the file.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()

	c.logger.Info("cache invalidated", slog.String("path", path))
}

// InvalidateAll drops every cached entry
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()

	c.logger.Info("cache cleared")
}

// Len returns the number of cached entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
