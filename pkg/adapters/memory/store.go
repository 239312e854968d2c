package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/previewkit/pkg/domain"
)

// Store implements ports.PreviewStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.PreviewRequest
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.PreviewRequest),
	}
}

// Save stores a copy of the request.
func (s *Store) Save(ctx context.Context, req *domain.PreviewRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[req.PreviewFqName] = *req
	return nil
}

// Load returns a copy so callers can't mutate stored requests.
func (s *Store) Load(ctx context.Context, target string) (*domain.PreviewRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.data[target]
	if !ok {
		return nil, domain.ErrPreviewNotFound
	}
	return &req, nil
}

// Delete removes the request for target.
func (s *Store) Delete(ctx context.Context, target string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, target)
	return nil
}

// List returns the stored targets, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	targets := make([]string, 0, len(s.data))
	for target := range s.data {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return targets, nil
}
