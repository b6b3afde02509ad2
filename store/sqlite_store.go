package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const queryTimeout = 2 * time.Second

const schema = `
CREATE TABLE IF NOT EXISTS high_scores (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	score INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to execute migration: %w", err)
	}

	return &SQLiteStore{
		db: db,
	}, nil
}

func (s *SQLiteStore) HighScore() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	q := `
	SELECT score FROM high_scores WHERE id = 1;
	`
	var score int
	if err := s.db.QueryRowContext(ctx, q).Scan(&score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to scan high score: %w", err)
	}
	if score < 0 {
		return 0, fmt.Errorf("invalid high score %d", score)
	}
	return score, nil
}

func (s *SQLiteStore) SaveHighScore(score int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	q := `
	INSERT OR REPLACE INTO high_scores (id, score, updated_at)
	VALUES (1, ?, ?);
	`
	if _, err := s.db.ExecContext(ctx, q, score, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
