package order

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore backs development without a database and service tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]Order
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{orders: make(map[uuid.UUID]Order)}
}

func (s *InMemoryStore) Create(_ context.Context, order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Order, error) {
	return s.list(func(o Order) bool { return o.UserID == userID }), nil
}

func (s *InMemoryStore) ListAll(_ context.Context) ([]Order, error) {
	return s.list(func(Order) bool { return true }), nil
}

func (s *InMemoryStore) list(keep func(Order) bool) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
