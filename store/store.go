package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ScoreStore persists the all-time high score. A store with nothing saved
// reports 0 and no error.
type ScoreStore interface {
	HighScore() (int, error)
	SaveHighScore(score int) error
	Close() error
}

var ErrUnknownBackend = errors.New("unknown store backend")

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the store for backend, keeping its files under dataDir.
func Open(backend, dataDir string) (ScoreStore, error) {
	var (
		s   ScoreStore
		err error
	)
	switch backend {
	case BackendJSON:
		s, err = NewJSONStore(filepath.Join(dataDir, "gamestats.json"))
	case BackendSQLite:
		s, err = NewSQLiteStore(filepath.Join(dataDir, "snake.db"))
	case BackendMemory:
		s = NewMemoryStore(0)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
