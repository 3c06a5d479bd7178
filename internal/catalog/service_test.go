package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "velora/pkg/domain-errors"
)

func newTestService(t *testing.T) (*Service, *InMemoryCategoryStore, *InMemoryProductStore) {
	t.Helper()
	categories := NewInMemoryCategoryStore()
	products := NewInMemoryProductStore()
	return NewService(categories, products), categories, products
}

func seedCategory(t *testing.T, store *InMemoryCategoryStore, name, slug string, parentID *uuid.UUID) Category {
	t.Helper()
	c := Category{ID: uuid.New(), Name: name, Slug: slug, ParentID: parentID, CreatedAt: time.Now()}
	require.NoError(t, store.Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, store *InMemoryProductStore, name, slug string, categoryID *uuid.UUID, createdAt time.Time) Product {
	t.Helper()
	p := Product{
		ID:          uuid.New(),
		Name:        name,
		Slug:        slug,
		ProductCode: "PC-" + slug,
		Price:       decimal.NewFromInt(100),
		Stock:       3,
		Images:      []string{"/img/" + slug + ".jpg"},
		CategoryID:  categoryID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, store.Create(context.Background(), p))
	return p
}

func TestListProducts_CategoryFilterIncludesDirectChildren(t *testing.T) {
	svc, categories, products := newTestService(t)
	ctx := context.Background()

	women := seedCategory(t, categories, "Kadın", "kadin", nil)
	dresses := seedCategory(t, categories, "Elbise", "elbise", &women.ID)
	evening := seedCategory(t, categories, "Abiye", "abiye", &dresses.ID)
	men := seedCategory(t, categories, "Erkek", "erkek", nil)

	now := time.Now()
	inWomen := seedProduct(t, products, "Trençkot", "trenckot", &women.ID, now)
	inDresses := seedProduct(t, products, "Midi Elbise", "midi-elbise", &dresses.ID, now.Add(time.Minute))
	seedProduct(t, products, "Abiye Elbise", "abiye-elbise", &evening.ID, now)
	seedProduct(t, products, "Gömlek", "gomlek", &men.ID, now)
	seedProduct(t, products, "Kategorisiz", "kategorisiz", nil, now)

	got, err := svc.ListProducts(ctx, "kadin")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// newest first, one level only: grandchild and unrelated excluded
	assert.Equal(t, inDresses.ID, got[0].ID)
	assert.Equal(t, inWomen.ID, got[1].ID)
}

func TestListProducts_UnknownSlugReturnsEmptyList(t *testing.T) {
	svc, _, products := newTestService(t)
	seedProduct(t, products, "Trençkot", "trenckot", nil, time.Now())

	got, err := svc.ListProducts(context.Background(), "yok-boyle-kategori")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListProducts_NoFilterReturnsAllNewestFirst(t *testing.T) {
	svc, _, products := newTestService(t)
	now := time.Now()
	older := seedProduct(t, products, "Eski", "eski", nil, now.Add(-time.Hour))
	newer := seedProduct(t, products, "Yeni", "yeni", nil, now)

	got, err := svc.ListProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestListCategories_AttachesParentAndChildren(t *testing.T) {
	svc, categories, _ := newTestService(t)

	women := seedCategory(t, categories, "Kadın", "kadin", nil)
	dresses := seedCategory(t, categories, "Elbise", "elbise", &women.ID)

	got, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := make(map[uuid.UUID]Category)
	for _, c := range got {
		byID[c.ID] = c
	}
	require.NotNil(t, byID[dresses.ID].Parent)
	assert.Equal(t, women.ID, byID[dresses.ID].Parent.ID)
	require.Len(t, byID[women.ID].Children, 1)
	assert.Equal(t, dresses.ID, byID[women.ID].Children[0].ID)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc, categories, _ := newTestService(t)
	ctx := context.Background()
	seedCategory(t, categories, "Kadın", "kadin", nil)
	missingParent := uuid.New()

	tests := []struct {
		name     string
		input    CreateCategoryInput
		wantCode dErrors.Code
	}{
		{"missing name", CreateCategoryInput{Slug: "x"}, dErrors.CodeBadRequest},
		{"missing slug", CreateCategoryInput{Name: "X"}, dErrors.CodeBadRequest},
		{"unknown parent", CreateCategoryInput{Name: "X", Slug: "x", ParentID: &missingParent}, dErrors.CodeBadRequest},
		{"duplicate slug", CreateCategoryInput{Name: "Kadın 2", Slug: "kadin"}, dErrors.CodeConflict},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, tc.input)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, dErrors.CodeOf(err))
		})
	}
}

func TestCreateCategory_WithExistingParent(t *testing.T) {
	svc, categories, _ := newTestService(t)
	ctx := context.Background()
	women := seedCategory(t, categories, "Kadın", "kadin", nil)

	created, err := svc.CreateCategory(ctx, CreateCategoryInput{Name: "Elbise", Slug: "elbise", ParentID: &women.ID})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	require.NotNil(t, created.ParentID)
	assert.Equal(t, women.ID, *created.ParentID)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	err := svc.DeleteCategory(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func TestGetProductBySlug(t *testing.T) {
	svc, _, products := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, products, "Trençkot", "trenckot", nil, time.Now())

	got, err := svc.GetProductBySlug(ctx, "trenckot")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = svc.GetProductBySlug(ctx, "")
	assert.Equal(t, dErrors.CodeBadRequest, dErrors.CodeOf(err))

	_, err = svc.GetProductBySlug(ctx, "yok")
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func validProductInput() ProductInput {
	stock := 5
	return ProductInput{
		Name:        "Trençkot",
		Slug:        "trenckot",
		ProductCode: "TR-001",
		Price:       decimal.NewFromFloat(899.90),
		Stock:       &stock,
		Images:      []string{"/img/trenckot.jpg"},
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	missingCategory := uuid.New()
	negativeStock := -1

	tests := []struct {
		name     string
		mutate   func(*ProductInput)
		wantCode dErrors.Code
	}{
		{"missing name", func(in *ProductInput) { in.Name = " " }, dErrors.CodeBadRequest},
		{"missing slug", func(in *ProductInput) { in.Slug = "" }, dErrors.CodeBadRequest},
		{"missing product code", func(in *ProductInput) { in.ProductCode = "" }, dErrors.CodeBadRequest},
		{"no images", func(in *ProductInput) { in.Images = nil }, dErrors.CodeBadRequest},
		{"zero price", func(in *ProductInput) { in.Price = decimal.Zero }, dErrors.CodeBadRequest},
		{"negative price", func(in *ProductInput) { in.Price = decimal.NewFromInt(-10) }, dErrors.CodeBadRequest},
		{"negative stock", func(in *ProductInput) { in.Stock = &negativeStock }, dErrors.CodeBadRequest},
		{"unknown category", func(in *ProductInput) { in.CategoryID = &missingCategory }, dErrors.CodeBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validProductInput()
			tc.mutate(&input)
			_, err := svc.CreateProduct(ctx, input)
			require.Error(t, err)
			assert.Equal(t, tc.wantCode, dErrors.CodeOf(err))
		})
	}
}

func TestCreateProduct_DefaultsStockToZero(t *testing.T) {
	svc, _, _ := newTestService(t)
	input := validProductInput()
	input.Stock = nil

	created, err := svc.CreateProduct(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 0, created.Stock)
	assert.True(t, created.Price.Equal(decimal.NewFromFloat(899.90)))
}

func TestCreateProduct_DuplicateSlug(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)

	dup := validProductInput()
	dup.Name = "Başka Trençkot"
	_, err = svc.CreateProduct(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))
}

func TestUpdateProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)

	input := validProductInput()
	input.Name = "Uzun Trençkot"
	input.Price = decimal.NewFromInt(1099)
	updated, err := svc.UpdateProduct(ctx, created.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Uzun Trençkot", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(1099)))
	assert.Equal(t, created.ID, updated.ID)

	_, err = svc.UpdateProduct(ctx, uuid.New(), validProductInputWithSlug("baska-slug"))
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func validProductInputWithSlug(slug string) ProductInput {
	in := validProductInput()
	in.Slug = slug
	return in
}

func TestDeleteProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, validProductInput())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	err = svc.DeleteProduct(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeNotFound, dErrors.CodeOf(err))
}
