// Package service contains the catalog orchestration logic: product CRUD,
// attribute and media attachment, and bulk CSV import.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/internal/event"
	"github.com/chronora/retailops/internal/repository"
	"github.com/chronora/retailops/internal/storage"
	apperrors "github.com/chronora/retailops/pkg/errors"
	"github.com/chronora/retailops/pkg/validator"
)

// CatalogService orchestrates product operations across the repositories,
// media storage and the event publisher.
type CatalogService struct {
	products repository.ProductRepository
	attrs    repository.AttributeRepository
	media    repository.MediaRepository
	store    storage.Store
	events   event.Publisher
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	attrs repository.AttributeRepository,
	media repository.MediaRepository,
	store storage.Store,
	events event.Publisher,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		attrs:    attrs,
		media:    media,
		store:    store,
		events:   events,
		logger:   logger,
	}
}

// ProductInput carries the full product field set for create and update.
// Update has full-replace semantics: omitted optional fields overwrite with
// their zero values.
type ProductInput struct {
	SKU         string   `json:"sku" validate:"required"`
	Brand       string   `json:"brand" validate:"required"`
	Model       string   `json:"model" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Cost        float64  `json:"cost" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Velocity    string   `json:"velocity" validate:"omitempty,oneof=slow medium fast"`
	Status      string   `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (in ProductInput) toDomain() *domain.Product {
	var price float64
	if in.Price != nil {
		price = *in.Price
	}
	return &domain.Product{
		SKU:         in.SKU,
		Brand:       in.Brand,
		Model:       in.Model,
		Category:    in.Category,
		Description: in.Description,
		Price:       price,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Velocity:    domain.NormalizeVelocity(in.Velocity),
		Status:      domain.NormalizeStatus(in.Status),
	}
}

// CreateProduct validates the input and persists a new product. Validation
// failures abort before any store call.
func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	p := input.toDomain()
	p.ID = uuid.New()

	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", p.ID.String()),
		slog.String("sku", p.SKU),
	)
	s.events.ProductCreated(ctx, p)

	return p, nil
}

// GetProduct returns a product merged with its attributes and media lists.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.ProductDetail, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attrs, err := s.attrs.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	images, err := s.media.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}

	videos, err := s.media.ListVideos(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.ProductDetail{
		Product:    *p,
		Attributes: attrs,
		Images:     images,
		Videos:     videos,
	}, nil
}

// ListProducts returns all products with aggregated media paths, newest first.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.ProductListItem, error) {
	return s.products.List(ctx)
}

// SearchProducts returns products matching the term as a case-insensitive
// substring across brand, model, sku and category.
func (s *CatalogService) SearchProducts(ctx context.Context, term string) ([]domain.ProductListItem, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperrors.InvalidInput("search term is required")
	}
	return s.products.Search(ctx, term)
}

// UpdateProduct overwrites all mutable fields of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	p := input.toDomain()
	p.ID = id

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", p.ID.String()),
		slog.String("sku", p.SKU),
	)
	s.events.ProductUpdated(ctx, p)

	return p, nil
}

// DeleteProduct removes a product, its dependent rows and its media files.
// Filepaths are collected before the row delete since the cascade removes the
// rows referencing them. Physical deletion failures are logged, not surfaced:
// the row delete is authoritative for the operation's outcome.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	paths, err := s.media.ListFilepaths(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to collect media paths before delete",
			slog.String("product_id", id.String()),
			slog.String("error", err.Error()),
		)
		paths = nil
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	for _, path := range paths {
		if err := s.store.Delete(ctx, path); err != nil {
			s.logger.WarnContext(ctx, "failed to remove media file",
				slog.String("product_id", id.String()),
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id.String()),
		slog.Int("media_files", len(paths)),
	)
	s.events.ProductDeleted(ctx, id)

	return nil
}

// AttributeInput is a single name/value pair submitted for attachment.
type AttributeInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// BatchResult reports the outcome of a fan-out batch. Successes and errors
// are ordered by submission position, regardless of completion order.
type BatchResult struct {
	Total      int                `json:"total"`
	Succeeded  int                `json:"succeeded"`
	Failed     int                `json:"failed"`
	Attributes []domain.Attribute `json:"attributes,omitempty"`
	Errors     []string           `json:"errors,omitempty"`
}

// AddAttributes inserts each pair independently and waits for all of them
// before reporting. Partial success is still success, carrying the failure
// messages as warnings. Only an all-failed batch is an error.
func (s *CatalogService) AddAttributes(ctx context.Context, productID uuid.UUID, items []AttributeInput) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("attributes list is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	type itemResult struct {
		attr *domain.Attribute
		err  error
	}

	results := make([]itemResult, len(items))
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item AttributeInput) {
			defer wg.Done()

			if strings.TrimSpace(item.Name) == "" || strings.TrimSpace(item.Value) == "" {
				results[i] = itemResult{err: fmt.Errorf("name and value are required")}
				return
			}

			attr := &domain.Attribute{
				ID:        uuid.New(),
				ProductID: productID,
				Name:      item.Name,
				Value:     item.Value,
			}
			if err := s.attrs.Add(ctx, attr); err != nil {
				results[i] = itemResult{err: err}
				return
			}
			results[i] = itemResult{attr: attr}
		}(i, item)
	}
	wg.Wait()

	res := &BatchResult{Total: len(items)}
	for i, r := range results {
		if r.err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("item %d: %v", i+1, r.err))
			continue
		}
		res.Succeeded++
		res.Attributes = append(res.Attributes, *r.attr)
	}

	if res.Succeeded == 0 {
		return nil, apperrors.PartialFailure("some attributes failed to save", res.Errors)
	}

	if res.Failed > 0 {
		s.logger.WarnContext(ctx, "attribute batch completed with failures",
			slog.String("product_id", productID.String()),
			slog.Int("succeeded", res.Succeeded),
			slog.Int("failed", res.Failed),
		)
	}

	return res, nil
}
