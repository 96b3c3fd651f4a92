// Package storage provides a small SQLite-backed cache for runtime state
// that should survive restarts: guild owner IDs and the liveness heartbeat.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/small-frappuccino/modcore/pkg/util"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store wraps the SQLite database used for runtime state.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a store bound to the default state database path.
func NewStore() *Store {
	return NewStoreWithPath(util.GetStateDBPath())
}

// NewStoreWithPath creates a store bound to an explicit database path. Used
// by tests.
func NewStoreWithPath(path string) *Store {
	return &Store{path: path}
}

// Init opens the database, applies pragmas, and creates the schema.
func (s *Store) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("open state database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}

	schema := `
CREATE TABLE IF NOT EXISTS guild_meta (
	guild_id TEXT PRIMARY KEY,
	owner_id TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS runtime (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	s.db = db
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SetGuildOwnerID records the owner of a guild.
func (s *Store) SetGuildOwnerID(guildID, ownerID string) error {
	_, err := s.db.Exec(
		`INSERT INTO guild_meta (guild_id, owner_id, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(guild_id) DO UPDATE SET owner_id=excluded.owner_id, updated_at=excluded.updated_at`,
		guildID, ownerID, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set guild owner: %w", err)
	}
	return nil
}

// GetGuildOwnerID returns the recorded owner of a guild.
func (s *Store) GetGuildOwnerID(guildID string) (string, error) {
	var ownerID string
	err := s.db.QueryRow(`SELECT owner_id FROM guild_meta WHERE guild_id = ?`, guildID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get guild owner: %w", err)
	}
	return ownerID, nil
}

// SetHeartbeat records the last time the bot was known to be alive.
func (s *Store) SetHeartbeat(at time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO runtime (key, value, updated_at) VALUES ('heartbeat', ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		at.UTC().Format(time.RFC3339), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("set heartbeat: %w", err)
	}
	return nil
}

// GetHeartbeat returns the last recorded heartbeat.
func (s *Store) GetHeartbeat() (time.Time, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM runtime WHERE key = 'heartbeat'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get heartbeat: %w", err)
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse heartbeat: %w", err)
	}
	return at, nil
}
