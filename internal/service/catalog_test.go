package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/internal/storage/memory"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

func floatPtr(v float64) *float64 { return &v }

func newCatalogFixture() (*CatalogService, *mockProductRepo, *mockAttributeRepo, *mockMediaRepo, *memory.Store, *recordingPublisher) {
	products := new(mockProductRepo)
	attrs := new(mockAttributeRepo)
	media := new(mockMediaRepo)
	store := memory.New()
	events := new(recordingPublisher)
	svc := NewCatalogService(products, attrs, media, store, events, testLogger())
	return svc, products, attrs, media, store, events
}

func validInput() ProductInput {
	return ProductInput{
		SKU:      "WATCH-001",
		Brand:    "Chronora",
		Model:    "Meridian GMT",
		Category: "watches",
		Price:    floatPtr(2499),
	}
}

func TestCreateProduct(t *testing.T) {
	svc, products, _, _, _, events := newCatalogFixture()

	products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	p, err := svc.CreateProduct(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, "WATCH-001", p.SKU)
	assert.Equal(t, domain.VelocityMedium, p.Velocity)
	assert.Equal(t, domain.StatusActive, p.Status)
	assert.Equal(t, []uuid.UUID{p.ID}, events.created)
	products.AssertExpectations(t)
}

func TestCreateProduct_MissingRequiredFields(t *testing.T) {
	svc, products, _, _, _, events := newCatalogFixture()

	input := validInput()
	input.SKU = ""

	_, err := svc.CreateProduct(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Empty(t, events.created)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_MissingPrice(t *testing.T) {
	svc, products, _, _, _, _ := newCatalogFixture()

	input := validInput()
	input.Price = nil

	_, err := svc.CreateProduct(context.Background(), input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc, products, _, _, _, events := newCatalogFixture()

	products.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.AlreadyExists("product", "sku", "WATCH-001"))

	_, err := svc.CreateProduct(context.Background(), validInput())
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	assert.Empty(t, events.created)
}

func TestGetProduct(t *testing.T) {
	svc, products, attrs, media, _, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id, SKU: "WATCH-001"}, nil)
	attrs.On("ListByProduct", mock.Anything, id).Return([]domain.Attribute{
		{ProductID: id, Name: "movement", Value: "automatic"},
	}, nil)
	media.On("ListImages", mock.Anything, id).Return([]domain.ProductImage{
		{ProductID: id, Filepath: "/uploads/images/a.jpg"},
	}, nil)
	media.On("ListVideos", mock.Anything, id).Return([]domain.ProductVideo{}, nil)

	detail, err := svc.GetProduct(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "WATCH-001", detail.SKU)
	assert.Len(t, detail.Attributes, 1)
	assert.Len(t, detail.Images, 1)
	assert.Empty(t, detail.Videos)
}

func TestGetProduct_NotFound(t *testing.T) {
	svc, products, _, _, _, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("product", id.String()))

	_, err := svc.GetProduct(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearchProducts_EmptyTerm(t *testing.T) {
	svc, products, _, _, _, _ := newCatalogFixture()

	_, err := svc.SearchProducts(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchProducts(t *testing.T) {
	svc, products, _, _, _, _ := newCatalogFixture()

	products.On("Search", mock.Anything, "rolex").Return([]domain.ProductListItem{
		{Product: domain.Product{Brand: "Rolex"}},
	}, nil)

	items, err := svc.SearchProducts(context.Background(), " rolex ")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	products.AssertExpectations(t)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	svc, products, _, _, _, events := newCatalogFixture()
	id := uuid.New()

	products.On("Update", mock.Anything, mock.Anything).
		Return(apperrors.NotFound("product", id.String()))

	_, err := svc.UpdateProduct(context.Background(), id, validInput())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, events.updated)
}

func TestUpdateProduct(t *testing.T) {
	svc, products, _, _, _, events := newCatalogFixture()
	id := uuid.New()

	products.On("Update", mock.Anything, mock.MatchedBy(func(p *domain.Product) bool {
		return p.ID == id && p.SKU == "WATCH-001"
	})).Return(nil)

	p, err := svc.UpdateProduct(context.Background(), id, validInput())
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, []uuid.UUID{id}, events.updated)
}

func TestDeleteProduct_RemovesFiles(t *testing.T) {
	svc, products, _, media, store, events := newCatalogFixture()
	id := uuid.New()
	ctx := context.Background()

	pathA, err := store.Save(ctx, "images", "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	pathB, err := store.Save(ctx, "videos", "b.mp4", strings.NewReader("b"))
	require.NoError(t, err)

	media.On("ListFilepaths", mock.Anything, id).Return([]string{pathA, pathB}, nil)
	products.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.DeleteProduct(ctx, id))
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, []uuid.UUID{id}, events.deleted)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, products, _, media, store, events := newCatalogFixture()
	id := uuid.New()
	ctx := context.Background()

	path, err := store.Save(ctx, "images", "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)

	media.On("ListFilepaths", mock.Anything, id).Return([]string{path}, nil)
	products.On("Delete", mock.Anything, id).Return(apperrors.NotFound("product", id.String()))

	err = svc.DeleteProduct(ctx, id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	// row delete failed, so the physical file must survive
	assert.Equal(t, 1, store.Len())
	assert.Empty(t, events.deleted)
}

func TestAddAttributes_MixedBatch(t *testing.T) {
	svc, products, attrs, _, _, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	attrs.On("Add", mock.Anything, mock.AnythingOfType("*domain.Attribute")).Return(nil)

	items := []AttributeInput{
		{Name: "movement", Value: "automatic"},
		{Name: "", Value: "steel"}, // invalid: blank name
		{Name: "dial", Value: "black"},
	}

	res, err := svc.AddAttributes(context.Background(), id, items)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "item 2")
	require.Len(t, res.Attributes, 2)
	assert.Equal(t, "movement", res.Attributes[0].Name)
	assert.Equal(t, "dial", res.Attributes[1].Name)
	attrs.AssertNumberOfCalls(t, "Add", 2)
}

func TestAddAttributes_AllFail(t *testing.T) {
	svc, products, attrs, _, _, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	attrs.On("Add", mock.Anything, mock.Anything).Return(assert.AnError)

	items := []AttributeInput{
		{Name: "movement", Value: "automatic"},
		{Name: "dial", Value: "black"},
	}

	_, err := svc.AddAttributes(context.Background(), id, items)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PARTIAL_FAILURE", appErr.Code)
}

func TestAddAttributes_EmptyList(t *testing.T) {
	svc, products, _, _, _, _ := newCatalogFixture()

	_, err := svc.AddAttributes(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAddAttributes_ProductNotFound(t *testing.T) {
	svc, products, attrs, _, _, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("product", id.String()))

	_, err := svc.AddAttributes(context.Background(), id, []AttributeInput{{Name: "a", Value: "b"}})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	attrs.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}
