package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"velora/pkg/platform/sentinel"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// PostgresCategoryStore persists categories in PostgreSQL through the
// shared pgx pool.
type PostgresCategoryStore struct {
	pool *pgxpool.Pool
}

func NewPostgresCategoryStore(pool *pgxpool.Pool) *PostgresCategoryStore {
	return &PostgresCategoryStore{pool: pool}
}

const categoryColumns = `id, name, slug, parent_id, created_at`

func scanCategory(row pgx.Row) (Category, error) {
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt); err != nil {
		return Category{}, err
	}
	return c, nil
}

func (s *PostgresCategoryStore) List(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCategoryStore) FindByID(ctx context.Context, id uuid.UUID) (Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id.String())
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, sentinel.ErrNotFound
		}
		return Category{}, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

func (s *PostgresCategoryStore) FindBySlug(ctx context.Context, slug string) (Category, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE slug = $1`, slug)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, sentinel.ErrNotFound
		}
		return Category{}, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

func (s *PostgresCategoryStore) ListChildren(ctx context.Context, parentID uuid.UUID) ([]Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE parent_id = $1 ORDER BY name ASC`,
		parentID.String())
	if err != nil {
		return nil, fmt.Errorf("list child categories: %w", err)
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCategoryStore) Create(ctx context.Context, category Category) error {
	var parentID *string
	if category.ParentID != nil {
		v := category.ParentID.String()
		parentID = &v
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO categories (id, name, slug, parent_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		category.ID.String(), category.Name, category.Slug, parentID, category.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *PostgresCategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// PostgresProductStore persists products in PostgreSQL.
type PostgresProductStore struct {
	pool *pgxpool.Pool
}

func NewPostgresProductStore(pool *pgxpool.Pool) *PostgresProductStore {
	return &PostgresProductStore{pool: pool}
}

// price travels as text so decimal never round-trips through floats.
const productColumns = `id, name, slug, product_code, price::text, stock, images,
	description, content, model_sizes, sizes, washing, category_id, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var (
		p     Product
		price string
	)
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.ProductCode, &price, &p.Stock, &p.Images,
		&p.Description, &p.Content, &p.ModelSizes, &p.Sizes, &p.Washing, &p.CategoryID,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	p.Price, err = decimal.NewFromString(price)
	if err != nil {
		return Product{}, fmt.Errorf("parse price %q: %w", price, err)
	}
	return p, nil
}

func (s *PostgresProductStore) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PostgresProductStore) List(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

func (s *PostgresProductStore) ListByCategoryIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	return s.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE category_id = ANY($1::uuid[]) ORDER BY created_at DESC`, strIDs)
}

func (s *PostgresProductStore) FindBySlug(ctx context.Context, slug string) (Product, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = $1`, slug)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, sentinel.ErrNotFound
		}
		return Product{}, fmt.Errorf("find product by slug: %w", err)
	}
	return p, nil
}

func nullableID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	v := id.String()
	return &v
}

func emptySliceNotNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

func (s *PostgresProductStore) Create(ctx context.Context, product Product) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO products
		 (id, name, slug, product_code, price, stock, images, description, content,
		  model_sizes, sizes, washing, category_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		product.ID.String(), product.Name, product.Slug, product.ProductCode,
		product.Price.String(), product.Stock, emptySliceNotNil(product.Images),
		product.Description, product.Content, product.ModelSizes,
		emptySliceNotNil(product.Sizes), product.Washing, nullableID(product.CategoryID),
		product.CreatedAt, product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *PostgresProductStore) Update(ctx context.Context, product Product) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE products SET
		 name = $2, slug = $3, product_code = $4, price = $5::numeric, stock = $6,
		 images = $7, description = $8, content = $9, model_sizes = $10, sizes = $11,
		 washing = $12, category_id = $13, updated_at = $14
		 WHERE id = $1`,
		product.ID.String(), product.Name, product.Slug, product.ProductCode,
		product.Price.String(), product.Stock, emptySliceNotNil(product.Images),
		product.Description, product.Content, product.ModelSizes,
		emptySliceNotNil(product.Sizes), product.Washing, nullableID(product.CategoryID),
		product.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
