// Package checkpoint persists crawl progress so interrupted runs resume
// instead of restarting.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"nitscrape/internal/types"
)

// Snapshot is the on-disk checkpoint layout.
type Snapshot struct {
	Posts       []types.Post `json:"posts"`
	SeenIDs     []string     `json:"seen_ids"`
	ScrollCount int          `json:"scroll_count"`
	Timestamp   string       `json:"timestamp"`
}

const stampLayout = "2006-01-02 15:04:05"

// Store reads and writes one account's checkpoint file.
type Store struct {
	path string
}

// NewStore places the checkpoint under dir, named after the handle.
func NewStore(dir, handle string) *Store {
	return &Store{path: filepath.Join(dir, handle+"_checkpoint.json")}
}

// Path returns the canonical checkpoint location.
func (s *Store) Path() string {
	return s.path
}

// Save writes progress atomically: marshal to a sibling temp file, then
// rename over the canonical path. A crash mid-write leaves the previous
// checkpoint intact.
func (s *Store) Save(posts []types.Post, seenIDs []string, step int) error {
	snap := Snapshot{
		Posts:       posts,
		SeenIDs:     seenIDs,
		ScrollCount: step,
		Timestamp:   time.Now().Format(stampLayout),
	}
	if snap.Posts == nil {
		snap.Posts = []types.Post{}
	}
	if snap.SeenIDs == nil {
		snap.SeenIDs = []string{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create checkpoint dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// Load reads the checkpoint back. A missing file surfaces as os.ErrNotExist
// so callers can treat it as a fresh start.
func (s *Store) Load() ([]types.Post, []string, int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, nil, 0, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to decode checkpoint %s: %w", s.path, err)
	}
	return snap.Posts, snap.SeenIDs, snap.ScrollCount, nil
}

// Clear removes the checkpoint after a fully successful crawl. A checkpoint
// that is already gone is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
