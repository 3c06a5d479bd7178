// Package adapters bridges the order package to its collaborators
// without introducing a direct dependency between domains.
package adapters

import (
	"context"

	"github.com/google/uuid"

	"velora/internal/customer"
	"velora/internal/order"
)

// CustomerDirectory adapts the customer service to the order package's
// UserDirectory.
type CustomerDirectory struct {
	customers *customer.Service
}

func NewCustomerDirectory(customers *customer.Service) *CustomerDirectory {
	return &CustomerDirectory{customers: customers}
}

func (d *CustomerDirectory) Summaries(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]order.UserSummary, error) {
	profiles, err := d.customers.Profiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]order.UserSummary, len(profiles))
	for id, p := range profiles {
		out[id] = order.UserSummary{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
			Email:     p.Email,
		}
	}
	return out, nil
}
