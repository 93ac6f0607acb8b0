// Package store persists the budget snapshot as one document and loads the
// category seed used on first run.
//
// Every backend stores the same JSON document under SnapshotKey; they only
// differ in where the bytes live.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"fjacquet/daily-dollar/internal/models"
)

// SnapshotKey is the key the snapshot document is stored under.
const SnapshotKey = "BudgetAppData"

// Backend names, as used in configuration.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// SnapshotStore loads and saves the snapshot wholesale.
type SnapshotStore interface {
	// Load returns the stored snapshot, or nil and no error when nothing has
	// been stored yet.
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

// Operations reported by PersistError.
const (
	OpLoad = "load"
	OpSave = "save"
)

// PersistError reports a failed load or save.
type PersistError struct {
	Op      string
	Backend string
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s snapshot (%s backend): %v", e.Op, e.Backend, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

func loadError(backend string, err error) error {
	return &PersistError{Op: OpLoad, Backend: backend, Err: err}
}

func saveError(backend string, err error) error {
	return &PersistError{Op: OpSave, Backend: backend, Err: err}
}

// EncodeSnapshot renders snap as an indented JSON document.
func EncodeSnapshot(snap *models.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("cannot encode nil snapshot")
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeSnapshot parses and validates a snapshot document.
func DecodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("error decoding snapshot: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
