package admin

import "context"

// Store persists admin accounts. Email lookups are against the
// normalized address; Create returns sentinel.ErrConflict on a
// duplicate email.
type Store interface {
	Create(ctx context.Context, admin Admin) error
	FindByEmail(ctx context.Context, email string) (Admin, error)
}
