// Package audit records security-relevant actions (registrations, logins,
// order placement, catalog mutations) to an append-only trail. Publishing
// is fire-and-forget: request handling never fails on audit errors.
package audit

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventUserRegistered  = "user.registered"
	EventUserLogin       = "user.login"
	EventAdminLogin      = "admin.login"
	EventOrderCreated    = "order.created"
	EventCategoryCreated = "category.created"
	EventCategoryDeleted = "category.deleted"
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
)

// Event is one audit trail entry.
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Type      string            `json:"type"`
	ActorID   string            `json:"actorId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
