// Package store persists the profile/audio/clip collection as a single JSON
// snapshot. Every write rewrites the whole snapshot through a temp file and
// an atomic rename, so readers never observe a partial document and a crash
// mid-write leaves the previous snapshot intact. An unreadable snapshot is
// quarantined (renamed aside with a timestamp) and replaced by an empty
// collection rather than surfacing as an error.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/killallgit/voice-search-api/internal/models"
)

// Data is the whole persisted collection. Absent keys default to empty
// slices at the load boundary so business logic never sees nil collections.
type Data struct {
	Profiles []models.Profile `json:"profiles"`
	Audios   []models.Audio   `json:"audios"`
	Clips    []models.Clip    `json:"clips"`
}

// Store guards the snapshot with a single lock. Callers must not hold the
// job-table lock while calling into the store (lock ordering: job lock is
// always released first).
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the JSON file at path. The file need not
// exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// View returns a copy of the current snapshot.
func (s *Store) View() (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Update loads the snapshot, applies fn, and persists the result atomically.
// If fn returns an error nothing is written.
func (s *Store) Update(fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.save(data)
}

// load reads and decodes the snapshot. Missing file or empty content yields
// an empty collection; undecodable content is quarantined.
func (s *Store) load() (*Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Data{}, nil
		}
		s.quarantine()
		return &Data{}, nil
	}

	if len(raw) == 0 {
		return &Data{}, nil
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("store snapshot corrupt, quarantining")
		s.quarantine()
		return &Data{}, nil
	}

	return &data, nil
}

// save writes the snapshot to a temp file in the same directory and renames
// it over the canonical path.
func (s *Store) save(data *Data) error {
	if data.Profiles == nil {
		data.Profiles = []models.Profile{}
	}
	if data.Audios == nil {
		data.Audios = []models.Audio{}
	}
	if data.Clips == nil {
		data.Clips = []models.Clip{}
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace store snapshot: %w", err)
	}

	return nil
}

// quarantine renames an unreadable snapshot aside so the next save starts
// fresh without destroying evidence.
func (s *Store) quarantine() {
	aside := fmt.Sprintf("%s.broken.%s.json", s.path, time.Now().Format("20060102_150405"))
	if err := os.Rename(s.path, aside); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("path", s.path).Msg("failed to quarantine corrupt snapshot")
	}
}
