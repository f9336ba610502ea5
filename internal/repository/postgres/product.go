// Package postgres implements the repository interfaces against PostgreSQL
// using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/pkg/database"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

const uniqueViolationCode = "23505"

// ProductRepository is the pgx-backed implementation of
// repository.ProductRepository.
type ProductRepository struct {
	db database.DBTX
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db database.DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const createProductQuery = `
	INSERT INTO products (id, sku, brand, model, category, description, price, cost, stock, velocity, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING created_at, updated_at`

// Create inserts a new product row. A duplicate SKU maps to an
// already-exists error.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	err := r.db.QueryRow(ctx, createProductQuery,
		p.ID, p.SKU, p.Brand, p.Model, p.Category, p.Description,
		p.Price, p.Cost, p.Stock, p.Velocity, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.AlreadyExists("product", "sku", p.SKU)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

const getProductQuery = `
	SELECT id, sku, brand, model, category, description, price, cost, stock, velocity, status, created_at, updated_at
	FROM products
	WHERE id = $1`

// GetByID fetches a single product row.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRow(ctx, getProductQuery, id).Scan(
		&p.ID, &p.SKU, &p.Brand, &p.Model, &p.Category, &p.Description,
		&p.Price, &p.Cost, &p.Stock, &p.Velocity, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id.String())
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

const listProductsQuery = `
	SELECT p.id, p.sku, p.brand, p.model, p.category, p.description, p.price, p.cost, p.stock, p.velocity, p.status, p.created_at, p.updated_at,
		COALESCE(array_agg(DISTINCT pi.filepath) FILTER (WHERE pi.filepath IS NOT NULL), '{}') AS images,
		COALESCE(array_agg(DISTINCT pv.filepath) FILTER (WHERE pv.filepath IS NOT NULL), '{}') AS videos
	FROM products p
	LEFT JOIN product_images pi ON pi.product_id = p.id
	LEFT JOIN product_videos pv ON pv.product_id = p.id
	GROUP BY p.id
	ORDER BY p.created_at DESC`

// List returns all products with their aggregated media paths, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]domain.ProductListItem, error) {
	rows, err := r.db.Query(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanListItems(rows)
}

const searchProductsQuery = `
	SELECT p.id, p.sku, p.brand, p.model, p.category, p.description, p.price, p.cost, p.stock, p.velocity, p.status, p.created_at, p.updated_at,
		COALESCE(array_agg(DISTINCT pi.filepath) FILTER (WHERE pi.filepath IS NOT NULL), '{}') AS images,
		COALESCE(array_agg(DISTINCT pv.filepath) FILTER (WHERE pv.filepath IS NOT NULL), '{}') AS videos
	FROM products p
	LEFT JOIN product_images pi ON pi.product_id = p.id
	LEFT JOIN product_videos pv ON pv.product_id = p.id
	WHERE p.brand ILIKE $1 OR p.model ILIKE $1 OR p.sku ILIKE $1 OR p.category ILIKE $1
	GROUP BY p.id
	ORDER BY p.created_at DESC`

// Search returns products matching the term as a case-insensitive substring
// across brand, model, sku and category.
func (r *ProductRepository) Search(ctx context.Context, query string) ([]domain.ProductListItem, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.Query(ctx, searchProductsQuery, pattern)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer rows.Close()

	return scanListItems(rows)
}

func scanListItems(rows pgx.Rows) ([]domain.ProductListItem, error) {
	items := make([]domain.ProductListItem, 0)
	for rows.Next() {
		var item domain.ProductListItem
		err := rows.Scan(
			&item.ID, &item.SKU, &item.Brand, &item.Model, &item.Category, &item.Description,
			&item.Price, &item.Cost, &item.Stock, &item.Velocity, &item.Status,
			&item.CreatedAt, &item.UpdatedAt,
			&item.ImagePaths, &item.VideoPaths,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return items, nil
}

const updateProductQuery = `
	UPDATE products
	SET sku = $2, brand = $3, model = $4, category = $5, description = $6,
		price = $7, cost = $8, stock = $9, velocity = $10, status = $11,
		updated_at = NOW()
	WHERE id = $1
	RETURNING created_at, updated_at`

// Update replaces all mutable fields of a product row.
func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	err := r.db.QueryRow(ctx, updateProductQuery,
		p.ID, p.SKU, p.Brand, p.Model, p.Category, p.Description,
		p.Price, p.Cost, p.Stock, p.Velocity, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("product", p.ID.String())
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.AlreadyExists("product", "sku", p.SKU)
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete removes a product row. Attribute and media rows are removed by the
// foreign key cascade.
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NotFound("product", id.String())
	}
	return nil
}
