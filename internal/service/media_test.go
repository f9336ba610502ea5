package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chronora/retailops/internal/domain"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

func uploadFile(name, content string) UploadFile {
	return UploadFile{Filename: name, Size: int64(len(content)), Content: strings.NewReader(content)}
}

func TestAttachImages(t *testing.T) {
	svc, products, _, media, store, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	media.On("ListImages", mock.Anything, id).Return([]domain.ProductImage{}, nil)

	var mu sync.Mutex
	var inserted []*domain.ProductImage
	media.On("AddImage", mock.Anything, mock.AnythingOfType("*domain.ProductImage")).
		Run(func(args mock.Arguments) {
			mu.Lock()
			defer mu.Unlock()
			inserted = append(inserted, args.Get(1).(*domain.ProductImage))
		}).
		Return(nil)

	files := []UploadFile{
		uploadFile("front.jpg", "front bytes"),
		uploadFile("back.png", "back bytes"),
	}

	res, err := svc.AttachImages(context.Background(), id, files)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 0, res.Failed)
	require.Len(t, res.Paths, 2)
	assert.True(t, strings.HasPrefix(res.Paths[0], "/uploads/images/"))
	assert.Equal(t, 2, store.Len())

	// the product had no images, so the first submitted file is primary
	require.Len(t, inserted, 2)
	for _, img := range inserted {
		if img.Filename == "front.jpg" {
			assert.True(t, img.IsPrimary)
		} else {
			assert.False(t, img.IsPrimary)
		}
	}
}

func TestAttachImages_ExistingImagesNoPrimary(t *testing.T) {
	svc, products, _, media, _, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	media.On("ListImages", mock.Anything, id).Return([]domain.ProductImage{{ID: uuid.New()}}, nil)
	media.On("AddImage", mock.Anything, mock.MatchedBy(func(img *domain.ProductImage) bool {
		return !img.IsPrimary
	})).Return(nil)

	_, err := svc.AttachImages(context.Background(), id, []UploadFile{uploadFile("extra.jpg", "x")})
	require.NoError(t, err)
	media.AssertExpectations(t)
}

func TestAttachImages_RejectsBadExtension(t *testing.T) {
	svc, products, _, media, store, _ := newCatalogFixture()
	id := uuid.New()

	files := []UploadFile{
		uploadFile("front.jpg", "ok"),
		uploadFile("malware.exe", "nope"),
	}

	_, err := svc.AttachImages(context.Background(), id, files)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	// whole request rejected before any persistence
	assert.Equal(t, 0, store.Len())
	products.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	media.AssertNotCalled(t, "AddImage", mock.Anything, mock.Anything)
}

func TestAttachImages_RejectsOversizedFile(t *testing.T) {
	svc, _, _, _, store, _ := newCatalogFixture()

	files := []UploadFile{
		{Filename: "huge.jpg", Size: domain.MaxImageSize + 1, Content: strings.NewReader("")},
	}

	_, err := svc.AttachImages(context.Background(), uuid.New(), files)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Equal(t, 0, store.Len())
}

func TestAttachImages_RejectsTooManyFiles(t *testing.T) {
	svc, _, _, _, _, _ := newCatalogFixture()

	files := make([]UploadFile, domain.MaxImageCount+1)
	for i := range files {
		files[i] = uploadFile(fmt.Sprintf("img-%d.jpg", i), "x")
	}

	_, err := svc.AttachImages(context.Background(), uuid.New(), files)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAttachImages_NoFiles(t *testing.T) {
	svc, _, _, _, _, _ := newCatalogFixture()

	_, err := svc.AttachImages(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAttachImages_ProductNotFound(t *testing.T) {
	svc, products, _, media, store, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(nil, apperrors.NotFound("product", id.String()))

	_, err := svc.AttachImages(context.Background(), id, []UploadFile{uploadFile("a.jpg", "x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Equal(t, 0, store.Len())
	media.AssertNotCalled(t, "AddImage", mock.Anything, mock.Anything)
}

func TestAttachVideos_PartialFailure(t *testing.T) {
	svc, products, _, media, store, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	media.On("AddVideo", mock.Anything, mock.MatchedBy(func(v *domain.ProductVideo) bool {
		return v.Filename == "good.mp4"
	})).Return(nil)
	media.On("AddVideo", mock.Anything, mock.MatchedBy(func(v *domain.ProductVideo) bool {
		return v.Filename == "bad.mov"
	})).Return(assert.AnError)

	files := []UploadFile{
		uploadFile("good.mp4", "good bytes"),
		uploadFile("bad.mov", "bad bytes"),
	}

	res, err := svc.AttachVideos(context.Background(), id, files)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "bad.mov")
	// the orphaned file for the failed row was cleaned up
	assert.Equal(t, 1, store.Len())
}

func TestAttachVideos_AllFail(t *testing.T) {
	svc, products, _, media, store, _ := newCatalogFixture()
	id := uuid.New()

	products.On("GetByID", mock.Anything, id).Return(&domain.Product{ID: id}, nil)
	media.On("AddVideo", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.AttachVideos(context.Background(), id, []UploadFile{uploadFile("clip.mp4", "x")})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PARTIAL_FAILURE", appErr.Code)
	assert.Equal(t, 0, store.Len())
}

func TestAttachVideos_RejectsImageExtension(t *testing.T) {
	svc, _, _, _, _, _ := newCatalogFixture()

	_, err := svc.AttachVideos(context.Background(), uuid.New(), []UploadFile{uploadFile("photo.jpg", "x")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestStoredName_KeepsExtensionOnly(t *testing.T) {
	name := storedName("My Holiday Photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.NotContains(t, name, "Holiday")
	// uuid (36 chars) + ".jpg"
	assert.Len(t, name, 40)
}
