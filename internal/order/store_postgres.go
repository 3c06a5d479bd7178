package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PostgresStore persists orders in PostgreSQL. Order and items are
// written in one transaction so a checkout is all-or-nothing.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, order Order) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO orders (id, user_id, status, total, currency, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
		order.ID.String(), order.UserID.String(), order.Status,
		order.Total.String(), order.Currency, order.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, item := range order.Items {
		var productID *string
		if item.ProductID != nil {
			v := item.ProductID.String()
			productID = &v
		}
		// position preserves the submitted line order; item ids are
		// random and carry no ordering.
		_, err = tx.Exec(ctx,
			`INSERT INTO order_items
			 (id, order_id, product_id, product_name, product_slug, image, size, unit_price, quantity, position)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::numeric, $9, $10)`,
			item.ID.String(), order.ID.String(), productID, item.ProductName,
			item.ProductSlug, item.Image, item.Size, item.UnitPrice.String(), item.Quantity, i)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit order tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Order, error) {
	return s.listOrders(ctx,
		`SELECT id, user_id, status, total::text, currency, created_at
		 FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID.String())
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Order, error) {
	return s.listOrders(ctx,
		`SELECT id, user_id, status, total::text, currency, created_at
		 FROM orders ORDER BY created_at DESC`)
}

func (s *PostgresStore) listOrders(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}
	return s.attachItems(ctx, orders)
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o     Order
		total string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &total, &o.Currency, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	var err error
	o.Total, err = decimal.NewFromString(total)
	if err != nil {
		return Order{}, fmt.Errorf("parse total %q: %w", total, err)
	}
	return o, nil
}

func (s *PostgresStore) attachItems(ctx context.Context, orders []Order) ([]Order, error) {
	ids := make([]string, len(orders))
	index := make(map[uuid.UUID]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID.String()
		index[o.ID] = i
		orders[i].Items = []OrderItem{}
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, order_id, product_id, product_name, product_slug, image, size,
		        unit_price::text, quantity
		 FROM order_items WHERE order_id = ANY($1::uuid[]) ORDER BY position`, ids)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item  OrderItem
			price string
		)
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.ProductSlug, &item.Image, &item.Size, &price, &item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse unit price %q: %w", price, err)
		}
		if i, ok := index[item.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return orders, rows.Err()
}
