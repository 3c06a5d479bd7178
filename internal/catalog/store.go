package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryStore persists categories. Implementations return
// sentinel.ErrNotFound / sentinel.ErrConflict for the factual cases;
// the service translates those into domain errors.
type CategoryStore interface {
	List(ctx context.Context) ([]Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (Category, error)
	FindBySlug(ctx context.Context, slug string) (Category, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error)
	Create(ctx context.Context, category Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductStore persists products. List and ListByCategoryIDs return
// newest-first.
type ProductStore interface {
	List(ctx context.Context) ([]Product, error)
	ListByCategoryIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindBySlug(ctx context.Context, slug string) (Product, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
