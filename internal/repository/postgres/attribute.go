package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/pkg/database"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

const foreignKeyViolationCode = "23503"

// AttributeRepository is the pgx-backed implementation of
// repository.AttributeRepository.
type AttributeRepository struct {
	db database.DBTX
}

// NewAttributeRepository creates a new attribute repository.
func NewAttributeRepository(db database.DBTX) *AttributeRepository {
	return &AttributeRepository{db: db}
}

const addAttributeQuery = `
	INSERT INTO product_attributes (id, product_id, name, value)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at`

// Add inserts an attribute row. A missing product maps to a not-found error.
func (r *AttributeRepository) Add(ctx context.Context, attr *domain.Attribute) error {
	err := r.db.QueryRow(ctx, addAttributeQuery,
		attr.ID, attr.ProductID, attr.Name, attr.Value,
	).Scan(&attr.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode {
			return apperrors.NotFound("product", attr.ProductID.String())
		}
		return fmt.Errorf("insert attribute: %w", err)
	}
	return nil
}

const listAttributesQuery = `
	SELECT id, product_id, name, value, created_at
	FROM product_attributes
	WHERE product_id = $1
	ORDER BY created_at ASC`

// ListByProduct returns all attributes of a product in insertion order.
func (r *AttributeRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Attribute, error) {
	rows, err := r.db.Query(ctx, listAttributesQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list attributes: %w", err)
	}
	defer rows.Close()

	attrs := make([]domain.Attribute, 0)
	for rows.Next() {
		var a domain.Attribute
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Name, &a.Value, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attribute row: %w", err)
		}
		attrs = append(attrs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attribute rows: %w", err)
	}
	return attrs, nil
}
