//go:build integration

package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora/internal/catalog"
	"velora/pkg/testutil/containers"
)

func TestPostgresOrderStore(t *testing.T) {
	pc := containers.NewPostgresContainer(t, "../../migrations")
	ctx := context.Background()

	orders := NewPostgresStore(pc.Pool)
	products := catalog.NewPostgresProductStore(pc.Pool)

	newOrder := func(userID uuid.UUID, productID *uuid.UUID, createdAt time.Time) Order {
		id := uuid.New()
		return Order{
			ID:        id,
			UserID:    userID,
			Status:    StatusPending,
			Total:     decimal.RequireFromString("250.00"),
			Currency:  "TRY",
			CreatedAt: createdAt,
			Items: []OrderItem{
				{
					ID:          uuid.New(),
					OrderID:     id,
					ProductID:   productID,
					ProductName: "Trençkot",
					ProductSlug: "trenckot",
					UnitPrice:   decimal.RequireFromString("125.00"),
					Quantity:    2,
				},
			},
		}
	}

	t.Run("create and list by user", func(t *testing.T) {
		require.NoError(t, pc.TruncateAll(ctx, "order_items", "orders"))

		me := uuid.New()
		other := uuid.New()
		now := time.Now().UTC()
		older := newOrder(me, nil, now.Add(-time.Hour))
		newer := newOrder(me, nil, now)
		foreign := newOrder(other, nil, now)
		for _, o := range []Order{older, newer, foreign} {
			require.NoError(t, orders.Create(ctx, o))
		}

		got, err := orders.ListByUser(ctx, me)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newer.ID, got[0].ID)
		assert.Equal(t, older.ID, got[1].ID)
		require.Len(t, got[0].Items, 1)
		assert.True(t, got[0].Items[0].UnitPrice.Equal(decimal.RequireFromString("125.00")))
		assert.True(t, got[0].Total.Equal(decimal.RequireFromString("250.00")))

		all, err := orders.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("items keep submission order", func(t *testing.T) {
		require.NoError(t, pc.TruncateAll(ctx, "order_items", "orders"))

		names := []string{"Trençkot", "Keten Gömlek", "Midi Etek", "Triko Kazak", "Deri Ceket"}
		id := uuid.New()
		o := Order{
			ID:        id,
			UserID:    uuid.New(),
			Status:    StatusPending,
			Total:     decimal.RequireFromString("625.00"),
			Currency:  "TRY",
			CreatedAt: time.Now().UTC(),
		}
		for _, name := range names {
			o.Items = append(o.Items, OrderItem{
				ID:          uuid.New(),
				OrderID:     id,
				ProductName: name,
				UnitPrice:   decimal.RequireFromString("125.00"),
				Quantity:    1,
			})
		}
		require.NoError(t, orders.Create(ctx, o))

		got, err := orders.ListByUser(ctx, o.UserID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Items, len(names))
		for i, item := range got[0].Items {
			assert.Equal(t, names[i], item.ProductName)
		}
	})

	t.Run("item survives product deletion", func(t *testing.T) {
		require.NoError(t, pc.TruncateAll(ctx, "order_items", "orders", "products"))

		now := time.Now().UTC()
		product := catalog.Product{
			ID: uuid.New(), Name: "Trençkot", Slug: "trenckot", ProductCode: "TR-1",
			Price: decimal.NewFromInt(125), Images: []string{"/img/t.jpg"},
			CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, products.Create(ctx, product))

		o := newOrder(uuid.New(), &product.ID, now)
		require.NoError(t, orders.Create(ctx, o))
		require.NoError(t, products.Delete(ctx, product.ID))

		got, err := orders.ListByUser(ctx, o.UserID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0].Items, 1)
		assert.Nil(t, got[0].Items[0].ProductID)
		assert.Equal(t, "Trençkot", got[0].Items[0].ProductName)
	})
}
