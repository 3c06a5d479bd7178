//go:build integration

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora/pkg/platform/sentinel"
	"velora/pkg/testutil/containers"
)

func TestPostgresCatalogStores(t *testing.T) {
	pc := containers.NewPostgresContainer(t, "../../migrations")
	ctx := context.Background()

	categories := NewPostgresCategoryStore(pc.Pool)
	products := NewPostgresProductStore(pc.Pool)

	reset := func(t *testing.T) {
		t.Helper()
		require.NoError(t, pc.TruncateAll(ctx, "products", "categories"))
	}

	t.Run("category round trip and conflicts", func(t *testing.T) {
		reset(t)

		women := Category{ID: uuid.New(), Name: "Kadın", Slug: "kadin", CreatedAt: time.Now().UTC()}
		require.NoError(t, categories.Create(ctx, women))

		got, err := categories.FindBySlug(ctx, "kadin")
		require.NoError(t, err)
		assert.Equal(t, women.ID, got.ID)
		assert.Nil(t, got.ParentID)

		dup := Category{ID: uuid.New(), Name: "Kadın 2", Slug: "kadin", CreatedAt: time.Now().UTC()}
		assert.ErrorIs(t, categories.Create(ctx, dup), sentinel.ErrConflict)

		_, err = categories.FindBySlug(ctx, "yok")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("child categories", func(t *testing.T) {
		reset(t)

		women := Category{ID: uuid.New(), Name: "Kadın", Slug: "kadin", CreatedAt: time.Now().UTC()}
		require.NoError(t, categories.Create(ctx, women))
		dresses := Category{ID: uuid.New(), Name: "Elbise", Slug: "elbise", ParentID: &women.ID, CreatedAt: time.Now().UTC()}
		require.NoError(t, categories.Create(ctx, dresses))

		children, err := categories.ListChildren(ctx, women.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, dresses.ID, children[0].ID)
		require.NotNil(t, children[0].ParentID)
		assert.Equal(t, women.ID, *children[0].ParentID)
	})

	t.Run("product round trip keeps price exact", func(t *testing.T) {
		reset(t)

		women := Category{ID: uuid.New(), Name: "Kadın", Slug: "kadin", CreatedAt: time.Now().UTC()}
		require.NoError(t, categories.Create(ctx, women))

		now := time.Now().UTC().Truncate(time.Millisecond)
		p := Product{
			ID:          uuid.New(),
			Name:        "Trençkot",
			Slug:        "trenckot",
			ProductCode: "TR-001",
			Price:       decimal.RequireFromString("899.90"),
			Stock:       5,
			Images:      []string{"/img/trenckot-1.jpg", "/img/trenckot-2.jpg"},
			Description: "Uzun trençkot",
			Sizes:       []string{"S", "M", "L"},
			CategoryID:  &women.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		require.NoError(t, products.Create(ctx, p))

		got, err := products.FindBySlug(ctx, "trenckot")
		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
		assert.True(t, got.Price.Equal(p.Price), "price %s", got.Price)
		assert.Equal(t, p.Images, got.Images)
		assert.Equal(t, p.Sizes, got.Sizes)
		require.NotNil(t, got.CategoryID)
		assert.Equal(t, women.ID, *got.CategoryID)
	})

	t.Run("list by category ids", func(t *testing.T) {
		reset(t)

		women := Category{ID: uuid.New(), Name: "Kadın", Slug: "kadin", CreatedAt: time.Now().UTC()}
		men := Category{ID: uuid.New(), Name: "Erkek", Slug: "erkek", CreatedAt: time.Now().UTC()}
		require.NoError(t, categories.Create(ctx, women))
		require.NoError(t, categories.Create(ctx, men))

		now := time.Now().UTC()
		older := Product{ID: uuid.New(), Name: "Eski", Slug: "eski", ProductCode: "E-1",
			Price: decimal.NewFromInt(100), Images: []string{"/img/e.jpg"},
			CategoryID: &women.ID, CreatedAt: now.Add(-time.Hour), UpdatedAt: now}
		newer := Product{ID: uuid.New(), Name: "Yeni", Slug: "yeni", ProductCode: "Y-1",
			Price: decimal.NewFromInt(200), Images: []string{"/img/y.jpg"},
			CategoryID: &women.ID, CreatedAt: now, UpdatedAt: now}
		other := Product{ID: uuid.New(), Name: "Gömlek", Slug: "gomlek", ProductCode: "G-1",
			Price: decimal.NewFromInt(300), Images: []string{"/img/g.jpg"},
			CategoryID: &men.ID, CreatedAt: now, UpdatedAt: now}
		for _, p := range []Product{older, newer, other} {
			require.NoError(t, products.Create(ctx, p))
		}

		got, err := products.ListByCategoryIDs(ctx, []uuid.UUID{women.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
	})

	t.Run("update and delete", func(t *testing.T) {
		reset(t)

		now := time.Now().UTC()
		p := Product{ID: uuid.New(), Name: "Trençkot", Slug: "trenckot", ProductCode: "TR-001",
			Price: decimal.NewFromInt(899), Images: []string{"/img/t.jpg"},
			CreatedAt: now, UpdatedAt: now}
		require.NoError(t, products.Create(ctx, p))

		p.Name = "Uzun Trençkot"
		p.Price = decimal.RequireFromString("1099.50")
		p.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, products.Update(ctx, p))

		got, err := products.FindBySlug(ctx, "trenckot")
		require.NoError(t, err)
		assert.Equal(t, "Uzun Trençkot", got.Name)
		assert.True(t, got.Price.Equal(p.Price))

		require.NoError(t, products.Delete(ctx, p.ID))
		assert.ErrorIs(t, products.Delete(ctx, p.ID), sentinel.ErrNotFound)

		missing := Product{ID: uuid.New(), Name: "X", Slug: "x", ProductCode: "X-1",
			Price: decimal.NewFromInt(1), Images: []string{"/img/x.jpg"}, UpdatedAt: now}
		assert.ErrorIs(t, products.Update(ctx, missing), sentinel.ErrNotFound)
	})
}
