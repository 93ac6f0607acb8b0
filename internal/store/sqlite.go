package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/daily-dollar/internal/models"

	_ "modernc.org/sqlite" // register sqlite driver
)

// SQLiteStore keeps the snapshot document in a key-value table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database at dbPath and migrates it.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE key = ?", SnapshotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, loadError(BackendSQLite, err)
	}

	snap, err := DecodeSnapshot(data)
	if err != nil {
		return nil, loadError(BackendSQLite, err)
	}
	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return saveError(BackendSQLite, err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SnapshotKey, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return saveError(BackendSQLite, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
