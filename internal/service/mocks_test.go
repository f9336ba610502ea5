package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/pkg/logger"
)

func testLogger() *slog.Logger {
	return logger.NewWithWriter("test", "error", io.Discard)
}

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) List(ctx context.Context) ([]domain.ProductListItem, error) {
	args := m.Called(ctx)
	if items, ok := args.Get(0).([]domain.ProductListItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Search(ctx context.Context, query string) ([]domain.ProductListItem, error) {
	args := m.Called(ctx, query)
	if items, ok := args.Get(0).([]domain.ProductListItem); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAttributeRepo struct {
	mock.Mock
}

func (m *mockAttributeRepo) Add(ctx context.Context, attr *domain.Attribute) error {
	return m.Called(ctx, attr).Error(0)
}

func (m *mockAttributeRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]domain.Attribute, error) {
	args := m.Called(ctx, productID)
	if attrs, ok := args.Get(0).([]domain.Attribute); ok {
		return attrs, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockMediaRepo struct {
	mock.Mock
}

func (m *mockMediaRepo) AddImage(ctx context.Context, img *domain.ProductImage) error {
	return m.Called(ctx, img).Error(0)
}

func (m *mockMediaRepo) AddVideo(ctx context.Context, vid *domain.ProductVideo) error {
	return m.Called(ctx, vid).Error(0)
}

func (m *mockMediaRepo) ListImages(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error) {
	args := m.Called(ctx, productID)
	if images, ok := args.Get(0).([]domain.ProductImage); ok {
		return images, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMediaRepo) ListVideos(ctx context.Context, productID uuid.UUID) ([]domain.ProductVideo, error) {
	args := m.Called(ctx, productID)
	if videos, ok := args.Get(0).([]domain.ProductVideo); ok {
		return videos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMediaRepo) ListFilepaths(ctx context.Context, productID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, productID)
	if paths, ok := args.Get(0).([]string); ok {
		return paths, args.Error(1)
	}
	return nil, args.Error(1)
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu      sync.Mutex
	created []uuid.UUID
	updated []uuid.UUID
	deleted []uuid.UUID
	imports int
}

func (p *recordingPublisher) ProductCreated(_ context.Context, prod *domain.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, prod.ID)
}

func (p *recordingPublisher) ProductUpdated(_ context.Context, prod *domain.Product) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updated = append(p.updated, prod.ID)
}

func (p *recordingPublisher) ProductDeleted(_ context.Context, id uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, id)
}

func (p *recordingPublisher) ImportCompleted(_ context.Context, _, _, _ int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.imports++
}
