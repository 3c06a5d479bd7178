package admin

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"velora/pkg/platform/sentinel"
)

// InMemoryStore backs development without a database and service tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	admins map[uuid.UUID]Admin
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{admins: make(map[uuid.UUID]Admin)}
}

func (s *InMemoryStore) Create(_ context.Context, admin Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.admins {
		if existing.Email == admin.Email {
			return sentinel.ErrConflict
		}
	}
	s.admins[admin.ID] = admin
	return nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return Admin{}, sentinel.ErrNotFound
}
