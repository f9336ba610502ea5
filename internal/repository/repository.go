// Package repository defines the persistence interfaces for the catalog.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/chronora/retailops/internal/domain"
)

// ProductRepository handles persistence of product rows.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context) ([]domain.ProductListItem, error)
	Search(ctx context.Context, query string) ([]domain.ProductListItem, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttributeRepository handles product attribute rows.
type AttributeRepository interface {
	Add(ctx context.Context, attr *domain.Attribute) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Attribute, error)
}

// MediaRepository handles image and video metadata rows.
type MediaRepository interface {
	AddImage(ctx context.Context, img *domain.ProductImage) error
	AddVideo(ctx context.Context, vid *domain.ProductVideo) error
	ListImages(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error)
	ListVideos(ctx context.Context, productID uuid.UUID) ([]domain.ProductVideo, error)
	ListFilepaths(ctx context.Context, productID uuid.UUID) ([]string, error)
}
