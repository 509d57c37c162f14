// Package store persists pipeline state between runs: the cached
// notification list, badge bookkeeping, and the server-suggested poll
// interval.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ghnotify/ghnotify/internal/log"
	"github.com/ghnotify/ghnotify/internal/model"
)

// State is the full persisted payload. Consumers must tolerate absent
// fields; there is no schema versioning.
type State struct {
	CachedNotifications []model.Notification `json:"cachedNotifications,omitempty"`
	CachedAt            time.Time            `json:"cachedAt,omitempty"`
	LastSeenIDs         []string             `json:"lastSeenIds,omitempty"`
	PollIntervalMinutes int                  `json:"pollIntervalMinutes,omitempty"`
	CurrentUser         string               `json:"currentUser,omitempty"`
}

// Store manages persistence of pipeline state
type Store struct {
	path  string
	state State
	mu    sync.RWMutex
}

// NewStore creates a store backed by state.json in the user cache directory.
func NewStore() (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "ghnotify")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return NewStoreAt(filepath.Join(dir, "state.json"))
}

// NewStoreAt creates a store backed by an explicit path.
func NewStoreAt(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		log.Debug("could not load state, starting fresh", "error", err)
	}
	return s, nil
}

// load reads the state from disk
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(data, &s.state)
}

// save writes the state to disk
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// SetNotifications replaces the cached list wholesale with the result of a
// successful run. Entries are never merged.
func (s *Store) SetNotifications(items []model.Notification, fetchedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CachedNotifications = items
	s.state.CachedAt = fetchedAt
	return s.save()
}

// Notifications returns the cached list from the last successful run and
// when it was written. The list may be stale; callers paint it while a
// fresh run is in flight.
func (s *Store) Notifications() ([]model.Notification, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CachedNotifications, s.state.CachedAt
}

// SetLastSeenIDs records which notification IDs the user has been shown,
// for new-item detection on the next tick.
func (s *Store) SetLastSeenIDs(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.LastSeenIDs = ids
	return s.save()
}

// LastSeenIDs returns the IDs shown on the previous successful run.
func (s *Store) LastSeenIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.LastSeenIDs
}

// SetPollInterval records the server-suggested poll interval in minutes.
func (s *Store) SetPollInterval(minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PollIntervalMinutes = minutes
	return s.save()
}

// PollInterval returns the recorded poll interval, or 0 if none.
func (s *Store) PollInterval() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.PollIntervalMinutes
}

// SetCurrentUser caches the acting user's login so it is resolved at most
// once per token.
func (s *Store) SetCurrentUser(login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CurrentUser = login
	return s.save()
}

// CurrentUser returns the cached acting user login, or "".
func (s *Store) CurrentUser() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentUser
}

// Clear removes all persisted state.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
