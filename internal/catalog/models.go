// Package catalog holds the category tree and the product records the
// storefront and admin panel browse and manage.
package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is a product grouping. One level of parent/child nesting is
// used in practice; the data model does not prevent deeper trees, and
// CreateCategory refuses parents that do not exist.
type Category struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parentId"`
	CreatedAt time.Time  `json:"createdAt"`

	// Parent and Children are attached on listing; both callers of the
	// flat list (storefront navigation, admin product form) rebuild the
	// shape they need from them.
	Parent   *Category  `json:"parent,omitempty"`
	Children []Category `json:"children,omitempty"`
}

// Product is a catalog record. Price uses decimal arithmetic; stock is
// a non-negative count.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	ProductCode string          `json:"productCode"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Images      []string        `json:"images"`
	Description string          `json:"description,omitempty"`
	Content     string          `json:"content,omitempty"`
	ModelSizes  string          `json:"modelSizes,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Washing     string          `json:"washing,omitempty"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// CreateCategoryInput carries the admin category form.
type CreateCategoryInput struct {
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	ParentID *uuid.UUID `json:"parentId"`
}

// ProductInput carries the admin product form; used for both create and
// full-replacement update.
type ProductInput struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	ProductCode string          `json:"productCode"`
	Price       decimal.Decimal `json:"price"`
	Stock       *int            `json:"stock"`
	Images      []string        `json:"images"`
	Description string          `json:"description"`
	Content     string          `json:"content"`
	ModelSizes  string          `json:"modelSizes"`
	Sizes       []string        `json:"sizes"`
	Washing     string          `json:"washing"`
	CategoryID  *uuid.UUID      `json:"categoryId"`
}
