// Package cache persists rendered diagram text keyed by a digest of the
// source content and render options, so unchanged inputs skip the parse and
// render pipeline on repeat runs.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"classmap/internal/logging"
)

// Store provides persistence for rendered diagrams in a SQLite database.
type Store struct {
	conn    *sql.DB
	logger  *logging.Logger
	dbPath  string
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Open opens or creates the cache database at <dir>/cache.db
func Open(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dbPath := filepath.Join(dir, "cache.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	store := &Store{
		conn:    conn,
		logger:  logger,
		dbPath:  dbPath,
		encoder: encoder,
		decoder: decoder,
	}

	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return store, nil
}

func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS renders (
			key TEXT PRIMARY KEY,
			payload BLOB NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_renders_created_at ON renders(created_at DESC);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			files INTEGER NOT NULL,
			hits INTEGER NOT NULL,
			misses INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Key computes the cache key for one render: a digest over the source
// content and every option that affects the rendered text.
func Key(source []byte, options ...string) string {
	h := sha256.New()
	h.Write(source)
	for _, opt := range options {
		h.Write([]byte{0})
		h.Write([]byte(opt))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached render for a key, or false when absent.
func (s *Store) Get(key string) (string, bool, error) {
	var payload []byte
	err := s.conn.QueryRow("SELECT payload FROM renders WHERE key = ?", key).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	decompressed, err := s.decoder.DecodeAll(payload, nil)
	if err != nil {
		// A corrupt entry is treated as a miss and overwritten on Put.
		s.logger.Warn("dropping corrupt cache entry", map[string]interface{}{"key": key})
		return "", false, nil
	}
	return string(decompressed), true, nil
}

// Put stores a rendered diagram under the given key.
func (s *Store) Put(key string, rendered string) error {
	payload := s.encoder.EncodeAll([]byte(rendered), nil)
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO renders (key, payload, created_at) VALUES (?, ?, ?)",
		key, payload, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// RecordRun stores a summary row for one invocation and returns its id.
func (s *Store) RecordRun(files, hits, misses int) (string, error) {
	id := uuid.NewString()
	_, err := s.conn.Exec(
		"INSERT INTO runs (id, started_at, files, hits, misses) VALUES (?, ?, ?, ?, ?)",
		id, time.Now().UTC().Format(time.RFC3339), files, hits, misses,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// Stats summarizes cache contents.
type Stats struct {
	Entries      int
	Runs         int
	PayloadBytes int64
}

// Stat reads entry and run counts plus total compressed payload size.
func (s *Store) Stat() (Stats, error) {
	var stats Stats
	if err := s.conn.QueryRow("SELECT COUNT(*), COALESCE(SUM(LENGTH(payload)), 0) FROM renders").
		Scan(&stats.Entries, &stats.PayloadBytes); err != nil {
		return Stats{}, err
	}
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM runs").Scan(&stats.Runs); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Clear removes all cached renders and run records.
func (s *Store) Clear() error {
	if _, err := s.conn.Exec("DELETE FROM renders"); err != nil {
		return err
	}
	_, err := s.conn.Exec("DELETE FROM runs")
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.encoder.Close()
	s.decoder.Close()
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
