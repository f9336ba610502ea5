package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/pkg/database"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

func TestAttributeRepository_Add(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttributeRepository(mock)
	attr := &domain.Attribute{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		Name:      "movement",
		Value:     "automatic",
	}

	mock.ExpectQuery(`INSERT INTO product_attributes`).
		WithArgs(attr.ID, attr.ProductID, attr.Name, attr.Value).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	err = repo.Add(context.Background(), attr)
	require.NoError(t, err)
	assert.False(t, attr.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttributeRepository_Add_ProductMissing(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttributeRepository(mock)
	attr := &domain.Attribute{ID: uuid.New(), ProductID: uuid.New(), Name: "movement", Value: "quartz"}

	mock.ExpectQuery(`INSERT INTO product_attributes`).
		WithArgs(attr.ID, attr.ProductID, attr.Name, attr.Value).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err = repo.Add(context.Background(), attr)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttributeRepository_ListByProduct(t *testing.T) {
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAttributeRepository(mock)
	productID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "product_id", "name", "value", "created_at"}).
		AddRow(uuid.New(), productID, "movement", "automatic", now).
		AddRow(uuid.New(), productID, "case_material", "steel", now)

	mock.ExpectQuery(`SELECT (.+) FROM product_attributes`).
		WithArgs(productID).
		WillReturnRows(rows)

	attrs, err := repo.ListByProduct(context.Background(), productID)
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	assert.Equal(t, "movement", attrs[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
