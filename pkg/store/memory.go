package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-memory Store for tests and single-process serve runs
// without a MongoDB deployment.
type Memory struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]*Snapshot)}
}

// Save persists a snapshot, assigning ID and CreatedAt when unset.
func (m *Memory) Save(ctx context.Context, snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}
	cp := *snap

	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[snap.ID] = &cp
	return nil
}

// Get retrieves a snapshot by ID.
func (m *Memory) Get(ctx context.Context, id string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *snap
	return &cp, nil
}

// List returns snapshot metadata for a repository, newest first.
func (m *Memory) List(ctx context.Context, repoPath string) ([]Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var snaps []Snapshot
	for _, snap := range m.snaps {
		if snap.RepoPath != repoPath {
			continue
		}
		cp := *snap
		cp.Layout = nil
		snaps = append(snaps, cp)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].CreatedAt.After(snaps[j].CreatedAt)
	})
	return snaps, nil
}

// Delete removes a snapshot by ID.
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snaps[id]; !ok {
		return ErrNotFound
	}
	delete(m.snaps, id)
	return nil
}

// Close does nothing for the in-memory store.
func (m *Memory) Close(ctx context.Context) error { return nil }

// Ensure Memory implements Store.
var _ Store = (*Memory)(nil)
