package store

import (
	"context"
	"sync"

	"github.com/matzehuels/ghostleg/pkg/round"
)

// MemoryStore keeps rounds in a map. Its contents are lost on exit.
type MemoryStore struct {
	mu     sync.RWMutex
	rounds map[string]*round.Round
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rounds: make(map[string]*round.Round)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (r *round.Round, err error) {
	defer func() { observeLoad(ctx, "memory", id, err) }()
	if err := checkID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rounds[id]
	if !ok {
		return nil, notFound(id)
	}
	return loaded(id, r)
}

func (s *MemoryStore) Put(ctx context.Context, r *round.Round) (err error) {
	defer func() { observeSave(ctx, "memory", r.ID, err) }()
	if err := checkID(r.ID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[r.ID] = r
	return nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.rounds))
	for _, r := range s.rounds {
		out = append(out, Summarize(r))
	}
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (err error) {
	defer func() { observeDelete(ctx, "memory", id, err) }()
	if err := checkID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rounds[id]; !ok {
		return notFound(id)
	}
	delete(s.rounds, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
