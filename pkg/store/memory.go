package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in a map. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Column, error) {
	s.mu.RLock()
	r, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return r.column()
}

func (s *MemoryStore) Put(_ context.Context, c *Column) error {
	r, err := prepare(c, s.now())
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[c.ID] = r
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return notFound(id)
	}
	delete(s.records, id)
	return nil
}

// List returns summaries, most recently updated first.
func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.summary())
	}
	s.mu.RUnlock()
	sortSummaries(out)
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func sortSummaries(ss []Summary) {
	sort.Slice(ss, func(i, j int) bool {
		if !ss[i].UpdatedAt.Equal(ss[j].UpdatedAt) {
			return ss[i].UpdatedAt.After(ss[j].UpdatedAt)
		}
		return ss[i].ID < ss[j].ID
	})
}

var _ Store = (*MemoryStore)(nil)
