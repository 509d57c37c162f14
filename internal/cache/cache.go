// Package cache stores enriched notifications between polls so threads
// without new activity skip the detail and activity API calls.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ghnotify/ghnotify/internal/model"
)

// Version invalidates entries when the cached schema changes.
const Version = 1

// TTL bounds how long an entry is served even when the thread has not
// been updated.
const TTL = time.Hour

// Entry is one cached enriched notification.
type Entry struct {
	Notification model.Notification `json:"notification"`
	CachedAt     time.Time          `json:"cached_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Version      int                `json:"version"`
}

// Cache stores enriched notifications as one file per thread.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted in the user cache directory.
func NewCache() (*Cache, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	cacheDir = filepath.Join(cacheDir, "ghnotify", "enriched")
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Cache{dir: cacheDir}, nil
}

// NewCacheAt creates a cache rooted at an explicit directory.
func NewCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) path(threadID string) string {
	return filepath.Join(c.dir, threadID+".json")
}

// Get returns the cached enrichment for a thread. The entry is only
// valid while the thread's UpdatedAt matches and the TTL has not
// elapsed.
func (c *Cache) Get(threadID string, updatedAt time.Time) (*model.Notification, bool) {
	if threadID == "" {
		return nil, false
	}

	data, err := os.ReadFile(c.path(threadID))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if entry.Version != Version {
		return nil, false
	}
	if !updatedAt.Equal(entry.UpdatedAt) {
		return nil, false
	}
	if time.Since(entry.CachedAt) > TTL {
		return nil, false
	}

	return &entry.Notification, true
}

// Set caches an enriched notification.
func (c *Cache) Set(threadID string, updatedAt time.Time, n *model.Notification) error {
	if threadID == "" || n == nil {
		return nil
	}

	entry := Entry{
		Notification: *n,
		CachedAt:     time.Now(),
		UpdatedAt:    updatedAt,
		Version:      Version,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.path(threadID), data, 0600)
}

// Clear removes all cached entries.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := os.Remove(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Stats reports how many entries exist and how many are still valid.
func (c *Cache) Stats() (total int, valid int, err error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, 0, err
	}

	now := time.Now()
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(c.dir, e.Name()))
		if err != nil {
			continue
		}
		total++

		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			continue
		}
		if entry.Version == Version && now.Sub(entry.CachedAt) <= TTL {
			valid++
		}
	}

	return total, valid, nil
}
