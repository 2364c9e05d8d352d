package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

// memStore is an in-memory storage.SaveStore for screen tests.
type memStore struct {
	mu       sync.Mutex
	saves    map[string]progression.PersistentData
	runs     []storage.RunRecord
	writeErr error
}

func newMemStore() *memStore {
	return &memStore{saves: make(map[string]progression.PersistentData)}
}

func (s *memStore) LoadSave(_ context.Context, profile string) (progression.PersistentData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.saves[profile]; ok {
		return d, nil
	}
	return progression.DefaultSave(), nil
}

func (s *memStore) WriteSave(_ context.Context, profile string, data progression.PersistentData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	s.saves[profile] = data
	return nil
}

func (s *memStore) RecordRun(_ context.Context, r storage.RunRecord) (storage.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, r)
	return r, nil
}

func (s *memStore) RecentRuns(_ context.Context, profile string, limit int) ([]storage.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []storage.RunRecord
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		if s.runs[i].Profile == profile {
			out = append(out, s.runs[i])
		}
	}
	return out, nil
}

func (s *memStore) BestRuns(_ context.Context, _ string, _ int) ([]storage.RunRecord, error) {
	return nil, errBestUnsupported
}

func (s *memStore) Close() error { return nil }

var errBestUnsupported = errors.New("best runs unsupported")

var _ storage.SaveStore = (*memStore)(nil)
