// Package order implements checkout: order creation with per-item
// validation and order listings for customers and the admin panel.
package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order statuses. Only StatusPending is set by code in this service;
// the rest exist for the admin panel display and future transitions.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

const defaultCurrency = "TRY"

// Order is a placed order with its line items attached.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	CreatedAt time.Time       `json:"createdAt"`
	Items     []OrderItem     `json:"items"`
}

// OrderItem is a line item snapshot taken at purchase time. ProductID is
// nullable so the order survives later product deletion.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"orderId"`
	ProductID   *uuid.UUID      `json:"productId"`
	ProductName string          `json:"name"`
	ProductSlug string          `json:"slug,omitempty"`
	Image       string          `json:"image,omitempty"`
	Size        string          `json:"size,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
}

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	Items    []OrderItemInput `json:"items"`
	Currency string           `json:"currency"`
}

// OrderItemInput accepts the aliases different storefront versions send
// for the same field: id/productId, name/productName, slug/productSlug,
// price/unitPrice. Quantity defaults to 1 when absent.
type OrderItemInput struct {
	ID          string           `json:"id"`
	ProductID   string           `json:"productId"`
	Name        string           `json:"name"`
	ProductName string           `json:"productName"`
	Slug        string           `json:"slug"`
	ProductSlug string           `json:"productSlug"`
	Image       string           `json:"image"`
	Size        string           `json:"size"`
	Price       *decimal.Decimal `json:"price"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Quantity    *int             `json:"quantity"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (in OrderItemInput) name() string { return firstNonEmpty(in.Name, in.ProductName) }

func (in OrderItemInput) slug() string { return firstNonEmpty(in.Slug, in.ProductSlug) }

func (in OrderItemInput) productID() *uuid.UUID {
	raw := firstNonEmpty(in.ProductID, in.ID)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func (in OrderItemInput) unitPrice() *decimal.Decimal {
	if in.Price != nil {
		return in.Price
	}
	return in.UnitPrice
}

func (in OrderItemInput) quantity() int {
	if in.Quantity == nil {
		return 1
	}
	return *in.Quantity
}

// UserSummary is the slice of a customer profile the admin order list
// shows next to each order.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// AdminOrder is an order enriched with its customer for the admin panel.
type AdminOrder struct {
	Order
	User *UserSummary `json:"user,omitempty"`
}
