package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"velora/internal/platform/metrics"
	dErrors "velora/pkg/domain-errors"
	"velora/pkg/platform/sentinel"
)

// Service owns catalog business rules: category tree shaping, the
// one-level subtree filter, and admin mutation validation.
type Service struct {
	categories CategoryStore
	products   ProductStore
	cache      *Cache
	metrics    *metrics.Metrics
}

func NewService(categories CategoryStore, products ProductStore, opts ...Option) *Service {
	s := &Service{categories: categories, products: products}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type Option func(*Service)

func WithCache(cache *Cache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// ListCategories returns all categories sorted by name with Parent and
// Children attached, rebuilt from the flat set.
func (s *Service) ListCategories(ctx context.Context) ([]Category, error) {
	flat, err := s.categories.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch categories")
	}

	byID := make(map[uuid.UUID]Category, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	out := make([]Category, len(flat))
	for i, c := range flat {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Parent = nil
				parent.Children = nil
				c.Parent = &parent
			}
		}
		for _, candidate := range flat {
			if candidate.ParentID != nil && *candidate.ParentID == c.ID {
				child := candidate
				child.Parent = nil
				child.Children = nil
				c.Children = append(c.Children, child)
			}
		}
		out[i] = c
	}
	return out, nil
}

func (s *Service) CreateCategory(ctx context.Context, input CreateCategoryInput) (Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Slug = strings.TrimSpace(input.Slug)
	if input.Name == "" || input.Slug == "" {
		return Category{}, dErrors.New(dErrors.CodeBadRequest, "Name and slug are required")
	}

	if input.ParentID != nil {
		if _, err := s.categories.FindByID(ctx, *input.ParentID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return Category{}, dErrors.New(dErrors.CodeBadRequest, "Parent category not found")
			}
			return Category{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to create category")
		}
	}

	category := Category{
		ID:        uuid.New(),
		Name:      input.Name,
		Slug:      input.Slug,
		ParentID:  input.ParentID,
		CreatedAt: time.Now(),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Category{}, dErrors.New(dErrors.CodeConflict, "Category slug already exists")
		}
		return Category{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to create category")
	}

	s.invalidateCache(ctx)
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Category not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Failed to delete category")
	}
	s.invalidateCache(ctx)
	return nil
}

// ListProducts returns the catalog, newest first. A non-empty
// categorySlug narrows it to the category and its direct children (one
// level, not a full tree walk). An unknown slug yields an empty list,
// not an error.
func (s *Service) ListProducts(ctx context.Context, categorySlug string) ([]Product, error) {
	if categorySlug == "" {
		return s.listAllProducts(ctx)
	}

	category, err := s.categories.FindBySlug(ctx, categorySlug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return []Product{}, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch products")
	}

	children, err := s.categories.ListChildren(ctx, category.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch products")
	}

	ids := make([]uuid.UUID, 0, len(children)+1)
	ids = append(ids, category.ID)
	for _, child := range children {
		ids = append(ids, child.ID)
	}

	products, err := s.products.ListByCategoryIDs(ctx, ids)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch products")
	}
	return products, nil
}

func (s *Service) listAllProducts(ctx context.Context) ([]Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetProducts(ctx); ok {
			s.metrics.RecordCacheLookup(true)
			return products, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch products")
	}
	if s.cache != nil {
		s.cache.SetProducts(ctx, products)
	}
	return products, nil
}

func (s *Service) GetProductBySlug(ctx context.Context, slug string) (Product, error) {
	if slug == "" {
		return Product{}, dErrors.New(dErrors.CodeBadRequest, "Slug required")
	}
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Product{}, dErrors.New(dErrors.CodeNotFound, "Product not found")
		}
		return Product{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch product")
	}
	return product, nil
}

func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	if err := s.validateProductInput(ctx, input); err != nil {
		return Product{}, err
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	now := time.Now()
	product := Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		ProductCode: strings.TrimSpace(input.ProductCode),
		Price:       input.Price,
		Stock:       stock,
		Images:      input.Images,
		Description: input.Description,
		Content:     input.Content,
		ModelSizes:  input.ModelSizes,
		Sizes:       input.Sizes,
		Washing:     input.Washing,
		CategoryID:  input.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return Product{}, dErrors.New(dErrors.CodeConflict, "Product slug already exists")
		}
		return Product{}, dErrors.Wrap(err, dErrors.CodeInternal, "Internal Server Error")
	}

	s.invalidateCache(ctx)
	return product, nil
}

// UpdateProduct fully replaces the mutable fields of the product with id.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (Product, error) {
	if err := s.validateProductInput(ctx, input); err != nil {
		return Product{}, err
	}

	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}
	product := Product{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Slug:        strings.TrimSpace(input.Slug),
		ProductCode: strings.TrimSpace(input.ProductCode),
		Price:       input.Price,
		Stock:       stock,
		Images:      input.Images,
		Description: input.Description,
		Content:     input.Content,
		ModelSizes:  input.ModelSizes,
		Sizes:       input.Sizes,
		Washing:     input.Washing,
		CategoryID:  input.CategoryID,
		UpdatedAt:   time.Now(),
	}
	if err := s.products.Update(ctx, product); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Product{}, dErrors.New(dErrors.CodeNotFound, "Product not found")
		}
		if errors.Is(err, sentinel.ErrConflict) {
			return Product{}, dErrors.New(dErrors.CodeConflict, "Product slug already exists")
		}
		return Product{}, dErrors.Wrap(err, dErrors.CodeInternal, "Internal Server Error")
	}

	s.invalidateCache(ctx)
	updated, err := s.products.FindBySlug(ctx, product.Slug)
	if err != nil {
		return product, nil
	}
	return updated, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Product not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "Internal Server Error")
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *Service) validateProductInput(ctx context.Context, input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.ProductCode) == "" ||
		strings.TrimSpace(input.Slug) == "" ||
		len(input.Images) == 0 ||
		input.Price.IsZero() {
		return dErrors.New(dErrors.CodeBadRequest, "Please provide all required fields")
	}
	if !input.Price.IsPositive() {
		return dErrors.New(dErrors.CodeBadRequest, "Price must be greater than zero")
	}
	if input.Stock != nil && *input.Stock < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "Stock cannot be negative")
	}
	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeBadRequest, "Category not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "Internal Server Error")
		}
	}
	return nil
}

func (s *Service) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}

// sortByName is shared by the memory store and tests.
func sortByName(categories []Category) {
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
}
