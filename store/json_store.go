package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type gameStats struct {
	HighScore int `json:"highScore"`
}

// JSONStore keeps the high score in a small JSON document on disk.
type JSONStore struct {
	mu       sync.Mutex
	filename string
}

func NewJSONStore(filename string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &JSONStore{filename: filename}, nil
}

func (s *JSONStore) HighScore() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read %s: %w", s.filename, err)
	}

	var stats gameStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", s.filename, err)
	}
	if stats.HighScore < 0 {
		return 0, fmt.Errorf("invalid high score %d in %s", stats.HighScore, s.filename)
	}
	return stats.HighScore, nil
}

func (s *JSONStore) SaveHighScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(gameStats{HighScore: score}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode high score: %w", err)
	}

	// write to a temp file and rename it over the original
	tmp := s.filename + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.filename, err)
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
