package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"pizza-storefront/internal/domain"
)

type memoryEntry struct {
	token   string
	items   []domain.LineItem
	touched time.Time
}

type memoryStore struct {
	mu    sync.Mutex
	carts map[string]*memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemory returns a process-local store. Carts idle for longer than ttl are
// dropped on next access; ttl <= 0 disables expiry.
func NewMemory(ttl time.Duration) Store {
	return &memoryStore{
		carts: make(map[string]*memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *memoryStore) Append(_ context.Context, sessionID string, item domain.LineItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(sessionID)
	if e == nil {
		e = &memoryEntry{}
		s.carts[sessionID] = e
	}
	e.items = append(e.items, item.Clone())
	e.token = uuid.NewString()
	e.touched = s.now()
	return len(e.items), nil
}

func (s *memoryStore) RemoveAt(_ context.Context, sessionID string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(sessionID)
	if e == nil || index < 0 || index >= len(e.items) {
		return nil
	}
	e.items = append(e.items[:index:index], e.items[index+1:]...)
	e.token = uuid.NewString()
	e.touched = s.now()
	return nil
}

func (s *memoryStore) Get(_ context.Context, sessionID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entry(sessionID)
	if e == nil {
		return domain.Cart{Items: []domain.LineItem{}}, nil
	}
	live := domain.Cart{Items: e.items}
	return domain.Cart{Token: e.token, Items: live.Snapshot()}, nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

// entry returns the live cart for sessionID, evicting it if expired. Callers hold mu.
func (s *memoryStore) entry(sessionID string) *memoryEntry {
	e, ok := s.carts[sessionID]
	if !ok {
		return nil
	}
	if s.ttl > 0 && s.now().Sub(e.touched) > s.ttl {
		delete(s.carts, sessionID)
		return nil
	}
	return e
}

func (s *memoryStore) Ping(context.Context) error { return nil }
