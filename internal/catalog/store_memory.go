package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"velora/pkg/platform/sentinel"
)

// InMemoryCategoryStore is used for development without a database and as
// the fake in service tests.
type InMemoryCategoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]Category
}

func NewInMemoryCategoryStore() *InMemoryCategoryStore {
	return &InMemoryCategoryStore{categories: make(map[uuid.UUID]Category)}
}

func (s *InMemoryCategoryStore) List(_ context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryCategoryStore) FindByID(_ context.Context, id uuid.UUID) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return Category{}, sentinel.ErrNotFound
	}
	return c, nil
}

func (s *InMemoryCategoryStore) FindBySlug(_ context.Context, slug string) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return Category{}, sentinel.ErrNotFound
}

func (s *InMemoryCategoryStore) ListChildren(_ context.Context, parentID uuid.UUID) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Category
	for _, c := range s.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	sortByName(out)
	return out, nil
}

func (s *InMemoryCategoryStore) Create(_ context.Context, category Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.categories {
		if existing.Slug == category.Slug {
			return sentinel.ErrConflict
		}
	}
	s.categories[category.ID] = category
	return nil
}

func (s *InMemoryCategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.categories, id)
	return nil
}

// InMemoryProductStore mirrors the postgres product store semantics,
// including unique-slug conflicts and newest-first ordering.
type InMemoryProductStore struct {
	mu       sync.RWMutex
	products map[uuid.UUID]Product
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{products: make(map[uuid.UUID]Product)}
}

func (s *InMemoryProductStore) List(_ context.Context) ([]Product, error) {
	return s.list(nil), nil
}

func (s *InMemoryProductStore) ListByCategoryIDs(_ context.Context, ids []uuid.UUID) ([]Product, error) {
	filter := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		filter[id] = struct{}{}
	}
	return s.list(filter), nil
}

func (s *InMemoryProductStore) list(filter map[uuid.UUID]struct{}) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if filter != nil {
			if p.CategoryID == nil {
				continue
			}
			if _, ok := filter[*p.CategoryID]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *InMemoryProductStore) FindBySlug(_ context.Context, slug string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, sentinel.ErrNotFound
}

func (s *InMemoryProductStore) Create(_ context.Context, product Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.Slug == product.Slug {
			return sentinel.ErrConflict
		}
	}
	s.products[product.ID] = product
	return nil
}

func (s *InMemoryProductStore) Update(_ context.Context, product Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.products[product.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, other := range s.products {
		if other.ID != product.ID && other.Slug == product.Slug {
			return sentinel.ErrConflict
		}
	}
	product.CreatedAt = existing.CreatedAt
	s.products[product.ID] = product
	return nil
}

func (s *InMemoryProductStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.products, id)
	return nil
}
