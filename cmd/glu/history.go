package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3"
)

// History records REPL input lines to a SQLite transcript, one session per
// process. Every operation is best-effort: a broken transcript store logs a
// warning and the REPL carries on.
type History struct {
	db        *sql.DB
	sessionID string
}

// defaultHistoryPath returns ~/.gluumy/history.db.
func defaultHistoryPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(home, ".gluumy", "history.db"), nil
}

// openHistory opens (creating if needed) the transcript database at path
// and starts a new session.
func openHistory(path string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES sessions(id),
		entered_at TIMESTAMP NOT NULL,
		input TEXT NOT NULL,
		error TEXT
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating lines table: %w", err)
	}

	h := &History{db: db, sessionID: uuid.NewString()}
	if _, err := db.Exec(`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		h.sessionID, time.Now().UTC()); err != nil {
		db.Close()
		return nil, fmt.Errorf("recording session: %w", err)
	}
	return h, nil
}

// Record stores one input line and the error it produced, if any.
func (h *History) Record(input string, feedErr error) {
	var errText any
	if feedErr != nil {
		errText = feedErr.Error()
	}
	if _, err := h.db.Exec(`INSERT INTO lines (session_id, entered_at, input, error) VALUES (?, ?, ?, ?)`,
		h.sessionID, time.Now().UTC(), input, errText); err != nil {
		log.Warningf("history: %v", err)
	}
}

// RecentInputs returns up to limit prior inputs across all sessions, newest
// first, for seeding line-editor history.
func (h *History) RecentInputs(limit int) ([]string, error) {
	rows, err := h.db.Query(`SELECT input FROM lines ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer rows.Close()

	var inputs []string
	for rows.Next() {
		var input string
		if err := rows.Scan(&input); err != nil {
			return nil, fmt.Errorf("reading history: %w", err)
		}
		inputs = append(inputs, input)
	}
	return inputs, rows.Err()
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}
