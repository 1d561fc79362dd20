// Package cache is an externally-owned memo of past comparison results keyed
// by a content fingerprint. The engine itself stays stateless; callers decide
// whether to consult the cache before comparing.
//
// Entries are JSON files named by fingerprint. Writes go through a temp file
// and rename, guarded by a flock lock file, so concurrent doccomp processes
// never observe partial entries.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/harrison/doccomp/internal/compare"
)

// Cache stores comparison results under a directory.
type Cache struct {
	dir string
}

// New returns a cache rooted at dir, creating it if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Get returns the cached result for fingerprint, or ok=false when absent.
// A corrupt entry is treated as absent and removed.
func (c *Cache) Get(fingerprint string) (*compare.Result, bool, error) {
	path := c.entryPath(fingerprint)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var res compare.Result
	if err := json.Unmarshal(data, &res); err != nil {
		os.Remove(path)
		return nil, false, nil
	}
	return &res, true, nil
}

// Put stores res under fingerprint.
func (c *Cache) Put(fingerprint string, res *compare.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	path := c.entryPath(fingerprint)
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock cache entry: %w", err)
	}
	defer lock.Unlock()

	return atomicWrite(path, data)
}

// Clear removes every cache entry and returns how many were deleted.
func (c *Cache) Clear() (int, error) {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("list cache entries: %w", err)
	}
	removed := 0
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return removed, fmt.Errorf("remove cache entry: %w", err)
		}
		removed++
	}
	return removed, nil
}

func (c *Cache) entryPath(fingerprint string) string {
	return filepath.Join(c.dir, fingerprint+".json")
}

// atomicWrite writes data via a temp file in the same directory and renames
// it over path, so readers never see a partial entry.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	tmp = nil
	return nil
}
