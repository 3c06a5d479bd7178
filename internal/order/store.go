package order

import (
	"context"

	"github.com/google/uuid"
)

// Store persists orders. Create writes the order and all its items as
// one atomic unit. Listings return newest-first with items attached.
type Store interface {
	Create(ctx context.Context, order Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// UserDirectory resolves customer summaries for the admin order list.
// The customer package provides the production implementation through
// an adapter.
type UserDirectory interface {
	Summaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]UserSummary, error)
}
