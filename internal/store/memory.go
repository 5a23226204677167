package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
)

// MemoryStore is an in-memory product store with the same contract as the
// SQLite-backed Store. It is the default when no database path is given and
// the workhorse for tests.
type MemoryStore struct {
	mu          sync.RWMutex
	products    map[int64]*catalog.Product
	changes     []catalog.Change
	nextChange  int64
	changeCount int64
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[int64]*catalog.Product),
		nextChange: 1,
	}
}

func (s *MemoryStore) Product(ctx context.Context, id int64) (*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, catalog.ErrNotFound)
	}
	return p.Clone(), nil
}

func (s *MemoryStore) SaveProduct(ctx context.Context, p *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p.Clone()
	return nil
}

func (s *MemoryStore) VariationsOf(ctx context.Context, parentID int64) ([]*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*catalog.Product{}
	for _, p := range s.products {
		if p.ParentID == parentID && p.Kind == catalog.KindVariation {
			out = append(out, p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*catalog.Product{}
	for _, p := range s.products {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		ni, nj := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if ni != nj {
			return ni < nj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) AppendChange(ctx context.Context, c catalog.Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextChange
	s.nextChange++
	c.ChangedAt = c.ChangedAt.UTC()
	s.changes = append(s.changes, c)
	return nil
}

// RecentChanges returns the newest entries first. A non-positive limit
// returns everything.
func (s *MemoryStore) RecentChanges(ctx context.Context, limit int) ([]catalog.Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []catalog.Change{}
	for i := len(s.changes) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.changes[i])
	}
	return out, nil
}

func (s *MemoryStore) SetChangeCount(ctx context.Context, n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changeCount = n
	return nil
}

func (s *MemoryStore) ChangeCount(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.changeCount, nil
}

func (s *MemoryStore) ImportProducts(ctx context.Context, products []*catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range products {
		s.products[p.ID] = p.Clone()
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

