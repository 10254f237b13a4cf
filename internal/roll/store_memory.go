package roll

import (
	"context"
	"sync"

	"voteguard/pkg/platform/sentinel"
)

// InMemoryStore keeps the reference semantics lightweight and testable. It
// intentionally favors clarity over performance: an ordered slice preserves
// insertion order for List, an index map serves Get.
type InMemoryStore struct {
	mu     sync.RWMutex
	voters []Voter
	index  map[string]int
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{index: make(map[string]int)}
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return Voter{}, sentinel.ErrNotFound
	}
	return s.voters[i].Clone(), nil
}

func (s *InMemoryStore) List(_ context.Context) ([]Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Voter, len(s.voters))
	for i, v := range s.voters {
		out[i] = v.Clone()
	}
	return out, nil
}

func (s *InMemoryStore) Insert(_ context.Context, v Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[v.ID]; ok {
		return sentinel.ErrConflict
	}
	s.index[v.ID] = len(s.voters)
	s.voters = append(s.voters, v.Clone())
	return nil
}

// Update holds the write lock across the mutation so concurrent updates against
// the same record are serialized: the second mutation runs against the first's
// result or not at all.
func (s *InMemoryStore) Update(_ context.Context, id string, mutate func(Voter) (Voter, error)) (Voter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return Voter{}, sentinel.ErrNotFound
	}
	updated, err := mutate(s.voters[i].Clone())
	if err != nil {
		return Voter{}, err
	}
	// The EPIC is immutable once created; mutations cannot rekey a record.
	updated.ID = id
	s.voters[i] = updated
	return updated.Clone(), nil
}
