package store

import (
	"context"
	"sync"

	"fjacquet/daily-dollar/internal/models"
)

// MemoryStore keeps the encoded document in memory. Useful for tests and
// dry runs; nothing survives the process.
type MemoryStore struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	snap, err := DecodeSnapshot(s.data)
	if err != nil {
		return nil, loadError(BackendMemory, err)
	}
	return snap, nil
}

func (s *MemoryStore) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := EncodeSnapshot(snap)
	if err != nil {
		return saveError(BackendMemory, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	s.saves++
	return nil
}

// Saves reports how many successful saves happened.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// Document returns the last saved document.
func (s *MemoryStore) Document() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...)
}

func (s *MemoryStore) Close() error {
	return nil
}
