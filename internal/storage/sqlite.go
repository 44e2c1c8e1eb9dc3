// Package storage provides SQLite-based persistence for session scores
// and recorded replays. Uses the pure-Go modernc.org/sqlite driver to
// avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/game"
	"github.com/vovakirdan/tui-tetris/internal/replay"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished-session result.
type ScoreEntry struct {
	ID        int64
	Score     int
	Level     int
	Lines     int
	CreatedAt time.Time
}

// ReplaySummary is the listing view of a stored replay.
type ReplaySummary struct {
	ID         int64
	StartedAt  time.Time
	FinalScore int
	FinalLevel int
	FinalLines int
	Duration   time.Duration
	EventCount int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			lines INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			board_width INTEGER NOT NULL,
			board_height INTEGER NOT NULL,
			first_shape TEXT NOT NULL,
			second_shape TEXT NOT NULL,
			final_score INTEGER NOT NULL,
			final_level INTEGER NOT NULL,
			final_lines INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS replay_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			input TEXT,
			shape TEXT,
			frame INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_replay_events_replay ON replay_events(replay_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished session's result.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(score, level, lines int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (score, level, lines) VALUES (?, ?, ?)",
		score, level, lines,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N results, ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, score, level, lines, created_at
		 FROM scores
		 ORDER BY score DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Score, &e.Level, &e.Lines, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the highest recorded score, 0 if none exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all recorded scores.
func (s *Store) ClearScores() error {
	if _, err := s.db.Exec("DELETE FROM scores"); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveReplay persists a recorded session: one metadata row plus its
// ordered event rows, atomically. Returns the replay ID.
func (s *Store) SaveReplay(data replay.Data) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	m := data.Meta
	result, err := tx.Exec(
		`INSERT INTO replays
		 (version, started_at, board_width, board_height, first_shape, second_shape,
		  final_score, final_level, final_lines, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Version,
		m.StartedAt.UTC().Format(time.RFC3339Nano),
		m.BoardWidth,
		m.BoardHeight,
		m.FirstShape.String(),
		m.SecondShape.String(),
		m.FinalScore,
		m.FinalLevel,
		m.FinalLines,
		m.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_events (replay_id, seq, kind, input, shape, frame)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, ev := range data.Events {
		var input, shape any
		switch ev.Kind {
		case replay.KindPlayerInput:
			input = ev.Input.String()
		case replay.KindPieceSpawn:
			shape = ev.Shape.String()
		}
		if _, err := stmt.Exec(id, i, ev.Kind.String(), input, shape, ev.Frame); err != nil {
			return 0, fmt.Errorf("storage: cannot save replay event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// LoadReplay retrieves a stored replay with its full event log.
// Unknown event kinds or unparseable input/shape names surface as
// decode failures.
func (s *Store) LoadReplay(id int64) (replay.Data, error) {
	var data replay.Data
	var startedAt string
	var first, second string
	var durationMs int64

	err := s.db.QueryRow(
		`SELECT version, started_at, board_width, board_height, first_shape, second_shape,
		        final_score, final_level, final_lines, duration_ms
		 FROM replays WHERE id = ?`,
		id,
	).Scan(
		&data.Meta.Version,
		&startedAt,
		&data.Meta.BoardWidth,
		&data.Meta.BoardHeight,
		&first,
		&second,
		&data.Meta.FinalScore,
		&data.Meta.FinalLevel,
		&data.Meta.FinalLines,
		&durationMs,
	)
	if err == sql.ErrNoRows {
		return data, ErrNotFound
	}
	if err != nil {
		return data, fmt.Errorf("storage: cannot query replay %d: %w", id, err)
	}

	if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		data.Meta.StartedAt = t
	}
	data.Meta.Duration = time.Duration(durationMs) * time.Millisecond
	if data.Meta.FirstShape, err = game.ParseShape(first); err != nil {
		return data, fmt.Errorf("storage: replay %d: %w", id, err)
	}
	if data.Meta.SecondShape, err = game.ParseShape(second); err != nil {
		return data, fmt.Errorf("storage: replay %d: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT kind, input, shape, frame
		 FROM replay_events
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return data, fmt.Errorf("storage: cannot query replay events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var input, shape sql.NullString
		var ev replay.Event
		if err := rows.Scan(&kind, &input, &shape, &ev.Frame); err != nil {
			return data, fmt.Errorf("storage: cannot scan event row: %w", err)
		}

		switch kind {
		case "PlayerInput":
			ev.Kind = replay.KindPlayerInput
			cmd, err := core.ParseCommand(input.String)
			if err != nil {
				return data, fmt.Errorf("storage: replay %d: %w", id, err)
			}
			ev.Input = cmd
		case "PieceSpawn":
			ev.Kind = replay.KindPieceSpawn
			sh, err := game.ParseShape(shape.String)
			if err != nil {
				return data, fmt.Errorf("storage: replay %d: %w", id, err)
			}
			ev.Shape = sh
		default:
			return data, fmt.Errorf("storage: replay %d: unknown event kind %q", id, kind)
		}
		data.Events = append(data.Events, ev)
	}
	if err := rows.Err(); err != nil {
		return data, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return data, nil
}

// ListReplays retrieves summaries of the most recent replays.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.started_at, r.final_score, r.final_level, r.final_lines, r.duration_ms,
		        (SELECT COUNT(*) FROM replay_events e WHERE e.replay_id = r.id)
		 FROM replays r
		 ORDER BY r.id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var summaries []ReplaySummary
	for rows.Next() {
		var rs ReplaySummary
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&rs.ID, &startedAt, &rs.FinalScore, &rs.FinalLevel,
			&rs.FinalLines, &durationMs, &rs.EventCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan replay row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			rs.StartedAt = t
		}
		rs.Duration = time.Duration(durationMs) * time.Millisecond
		summaries = append(summaries, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return summaries, nil
}

// DeleteReplay removes a replay and its events.
func (s *Store) DeleteReplay(id int64) error {
	result, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	// Cascade is not always enabled in SQLite; clean up explicitly.
	if _, err := s.db.Exec("DELETE FROM replay_events WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete replay events: %w", err)
	}
	return nil
}

// parseTimestamp handles SQLite datetimes arriving as time.Time or string.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
