package customer

import (
	"context"

	"github.com/google/uuid"
)

// Store persists customers. Email lookups are against the normalized
// (trimmed, lower-cased) address; Create returns sentinel.ErrConflict
// when the email is already registered.
type Store interface {
	Create(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]User, error)
}
