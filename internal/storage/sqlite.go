// Package storage provides SQLite-based persistence for recorded replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrReplayNotFound is returned when no replay matches an ID or prefix.
	ErrReplayNotFound = errors.New("storage: replay not found")
	// ErrAmbiguousID is returned when a prefix matches more than one replay.
	ErrAmbiguousID = errors.New("storage: replay id prefix is ambiguous")
)

// Store manages the SQLite database connection for replay persistence.
type Store struct {
	db *sql.DB
}

// ReplayFrame is one recorded simulation step.
type ReplayFrame struct {
	Delta     float64
	MoveLeft  bool
	MoveRight bool
}

// Replay is a full recorded session.
type Replay struct {
	ID          string
	Config      []byte // YAML of the config the session ran with
	Frames      []ReplayFrame
	FinalStatus string
	FinalHash   uint64
	CreatedAt   time.Time
}

// ReplaySummary is a replay without its frames.
type ReplaySummary struct {
	ID          string
	FrameCount  int
	Duration    time.Duration // Sum of recorded deltas
	FinalStatus string
	CreatedAt   time.Time
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
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			config_yaml TEXT NOT NULL,
			frame_count INTEGER NOT NULL,
			duration_secs REAL NOT NULL DEFAULT 0,
			final_status TEXT NOT NULL,
			final_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_frames (
			replay_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			delta REAL NOT NULL,
			move_left INTEGER NOT NULL,
			move_right INTEGER NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
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

// SaveReplay stores r and its frames in one transaction.
// An empty r.ID is replaced with a new UUID. Returns the stored ID.
func (s *Store) SaveReplay(r Replay) (string, error) {
	id := r.ID
	if id == "" {
		id = uuid.NewString()
	}

	var duration float64
	for _, f := range r.Frames {
		duration += f.Delta
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.Exec(
		`INSERT INTO replays (id, config_yaml, frame_count, duration_secs, final_status, final_hash)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(r.Config), len(r.Frames), duration, r.FinalStatus, formatHash(r.FinalHash),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO replay_frames (replay_id, seq, delta, move_left, move_right) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare frame insert: %w", err)
	}
	defer stmt.Close()

	for i, f := range r.Frames {
		if _, err := stmt.Exec(id, i, f.Delta, f.MoveLeft, f.MoveRight); err != nil {
			return "", fmt.Errorf("storage: cannot save frame %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Replay loads a replay and its frames by full ID.
func (s *Store) Replay(id string) (*Replay, error) {
	r := Replay{ID: id}
	var config, hash string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT config_yaml, final_status, final_hash, created_at FROM replays WHERE id = ?`,
		id,
	).Scan(&config, &r.FinalStatus, &hash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}

	r.Config = []byte(config)
	r.CreatedAt = parseTime(createdAt)
	if r.FinalHash, err = strconv.ParseUint(hash, 16, 64); err != nil {
		return nil, fmt.Errorf("storage: corrupt hash for replay %s: %w", id, err)
	}

	rows, err := s.db.Query(
		`SELECT delta, move_left, move_right FROM replay_frames WHERE replay_id = ? ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query frames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f ReplayFrame
		if err := rows.Scan(&f.Delta, &f.MoveLeft, &f.MoveRight); err != nil {
			return nil, fmt.Errorf("storage: cannot scan frame: %w", err)
		}
		r.Frames = append(r.Frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return &r, nil
}

// ResolveID expands a unique ID prefix into the full replay ID.
func (s *Store) ResolveID(prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrReplayNotFound)
	}

	rows, err := s.db.Query(`SELECT id FROM replays WHERE substr(id, 1, ?) = ? LIMIT 2`, len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query replay ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrReplayNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// ListReplays returns the most recent replays, newest first.
func (s *Store) ListReplays(limit int) ([]ReplaySummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, frame_count, duration_secs, final_status, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
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
		var secs float64
		var createdAt any
		if err := rows.Scan(&rs.ID, &rs.FrameCount, &secs, &rs.FinalStatus, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rs.Duration = time.Duration(secs * float64(time.Second))
		rs.CreatedAt = parseTime(createdAt)
		summaries = append(summaries, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return summaries, nil
}

// DeleteReplay removes a replay and its frames.
func (s *Store) DeleteReplay(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrReplayNotFound, id)
	}
	if _, err := tx.Exec("DELETE FROM replay_frames WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete frames: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// formatHash stores hashes as hex text; SQLite integers are signed.
func formatHash(h uint64) string {
	return strconv.FormatUint(h, 16)
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
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
