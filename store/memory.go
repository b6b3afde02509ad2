package store

import "sync"

// MemoryStore keeps the high score for the lifetime of the process.
type MemoryStore struct {
	lock  sync.RWMutex
	score int
	saves int
}

func NewMemoryStore(initial int) *MemoryStore {
	return &MemoryStore{score: initial}
}

func (m *MemoryStore) HighScore() (int, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.score, nil
}

func (m *MemoryStore) SaveHighScore(score int) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.score = score
	m.saves++
	return nil
}

// Saves returns how many times SaveHighScore was called.
func (m *MemoryStore) Saves() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.saves
}

func (m *MemoryStore) Close() error {
	return nil
}
