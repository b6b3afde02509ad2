package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MaxRecords bounds the history kept on disk; older runs are dropped first.
const MaxRecords = 500

// RunRecord is one finished game.
type RunRecord struct {
	ID        string    `json:"id"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
}

// Duration returns how long the run lasted.
func (r RunRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

type Summary struct {
	GamesPlayed     int
	AverageScore    float64
	MaxScore        int
	AverageDuration time.Duration
}

// GameStats holds the run history. A zero filename keeps it in memory only.
type GameStats struct {
	mutex    sync.RWMutex
	filename string
	Games    []RunRecord
}

// NewGameStats loads the history from filename if it exists.
func NewGameStats(filename string) (*GameStats, error) {
	s := &GameStats{
		filename: filename,
		Games:    make([]RunRecord, 0),
	}
	if err := s.loadFromFile(); err != nil {
		return s, err
	}
	return s, nil
}

// AddGame appends a run and returns its record.
func (s *GameStats) AddGame(score int, startTime, endTime time.Time) RunRecord {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	rec := RunRecord{
		ID:        uuid.NewString(),
		StartTime: startTime,
		EndTime:   endTime,
		Score:     score,
	}
	s.Games = append(s.Games, rec)
	if over := len(s.Games) - MaxRecords; over > 0 {
		s.Games = append([]RunRecord(nil), s.Games[over:]...)
	}
	return rec
}

// RecordRun adds a finished run and persists the history.
func (s *GameStats) RecordRun(score int, startTime, endTime time.Time) error {
	s.AddGame(score, startTime, endTime)
	return s.SaveToFile()
}

// GetStats returns a copy of the recorded runs, oldest first.
func (s *GameStats) GetStats() []RunRecord {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	games := make([]RunRecord, len(s.Games))
	copy(games, s.Games)
	return games
}

func (s *GameStats) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sum := Summary{GamesPlayed: len(s.Games)}
	if len(s.Games) == 0 {
		return sum
	}

	var totalScore int
	var totalDuration time.Duration
	for _, g := range s.Games {
		totalScore += g.Score
		totalDuration += g.Duration()
		if g.Score > sum.MaxScore {
			sum.MaxScore = g.Score
		}
	}
	sum.AverageScore = float64(totalScore) / float64(len(s.Games))
	sum.AverageDuration = totalDuration / time.Duration(len(s.Games))
	return sum
}

// SaveToFile writes the history as JSON.
func (s *GameStats) SaveToFile() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.filename == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.filename), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	jsonData, err := json.Marshal(s.Games)
	if err != nil {
		return fmt.Errorf("failed to marshal stats data: %w", err)
	}

	if err := os.WriteFile(s.filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}

func (s *GameStats) loadFromFile() error {
	if s.filename == "" {
		return nil
	}
	data, err := os.ReadFile(s.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var games []RunRecord
	if err := json.Unmarshal(data, &games); err != nil {
		return fmt.Errorf("failed to decode stats file: %w", err)
	}
	s.Games = games
	return nil
}
