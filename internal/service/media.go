package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/chronora/retailops/internal/domain"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

// UploadFile is a single file from a multipart upload, decoupled from the
// HTTP layer so the validation and attachment logic is testable directly.
type UploadFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// MediaBatchResult reports a media attachment batch. Paths are ordered by
// submission position.
type MediaBatchResult struct {
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Paths     []string `json:"paths"`
	Errors    []string `json:"errors,omitempty"`
}

// validateImageBatch rejects the whole request before any persistence when a
// file fails type or size checks, or the batch exceeds the count limit.
func validateImageBatch(files []UploadFile) error {
	if len(files) == 0 {
		return apperrors.InvalidInput("no files uploaded")
	}
	if len(files) > domain.MaxImageCount {
		return apperrors.InvalidInput(fmt.Sprintf("too many files: at most %d images per request", domain.MaxImageCount))
	}
	for _, f := range files {
		if !domain.AllowedImageExt(f.Filename) {
			return apperrors.InvalidInput(fmt.Sprintf("file %q has an unsupported image type", f.Filename))
		}
		if f.Size > domain.MaxImageSize {
			return apperrors.InvalidInput(fmt.Sprintf("file %q exceeds the 10 MiB image size limit", f.Filename))
		}
	}
	return nil
}

func validateVideoBatch(files []UploadFile) error {
	if len(files) == 0 {
		return apperrors.InvalidInput("no files uploaded")
	}
	if len(files) > domain.MaxVideoCount {
		return apperrors.InvalidInput(fmt.Sprintf("too many files: at most %d videos per request", domain.MaxVideoCount))
	}
	for _, f := range files {
		if !domain.AllowedVideoExt(f.Filename) {
			return apperrors.InvalidInput(fmt.Sprintf("file %q has an unsupported video type", f.Filename))
		}
		if f.Size > domain.MaxVideoSize {
			return apperrors.InvalidInput(fmt.Sprintf("file %q exceeds the 100 MiB video size limit", f.Filename))
		}
	}
	return nil
}

// storedName generates a collision-resistant filename, keeping only the
// original extension.
func storedName(original string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(original))
}

// AttachImages validates the whole batch up front, then saves and records
// each file independently. The first image of a product with no existing
// images is marked primary.
func (s *CatalogService) AttachImages(ctx context.Context, productID uuid.UUID, files []UploadFile) (*MediaBatchResult, error) {
	if err := validateImageBatch(files); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	existing, err := s.media.ListImages(ctx, productID)
	if err != nil {
		return nil, err
	}
	markPrimary := len(existing) == 0

	results := make([]mediaItemResult, len(files))
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()

			path, err := s.store.Save(ctx, domain.MediaKindImage, storedName(f.Filename), f.Content)
			if err != nil {
				results[i] = mediaItemResult{err: err}
				return
			}

			img := &domain.ProductImage{
				ID:        uuid.New(),
				ProductID: productID,
				Filename:  f.Filename,
				Filepath:  path,
				IsPrimary: markPrimary && i == 0,
			}
			if err := s.media.AddImage(ctx, img); err != nil {
				if derr := s.store.Delete(ctx, path); derr != nil {
					s.logger.WarnContext(ctx, "failed to remove orphaned image file",
						slog.String("path", path),
						slog.String("error", derr.Error()),
					)
				}
				results[i] = mediaItemResult{err: err}
				return
			}
			results[i] = mediaItemResult{path: path}
		}(i, f)
	}
	wg.Wait()

	return s.collectMediaResults(ctx, productID, "images", files, results)
}

// AttachVideos is the video counterpart of AttachImages.
func (s *CatalogService) AttachVideos(ctx context.Context, productID uuid.UUID, files []UploadFile) (*MediaBatchResult, error) {
	if err := validateVideoBatch(files); err != nil {
		return nil, err
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	results := make([]mediaItemResult, len(files))
	var wg sync.WaitGroup

	for i, f := range files {
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()

			path, err := s.store.Save(ctx, domain.MediaKindVideo, storedName(f.Filename), f.Content)
			if err != nil {
				results[i] = mediaItemResult{err: err}
				return
			}

			vid := &domain.ProductVideo{
				ID:        uuid.New(),
				ProductID: productID,
				Filename:  f.Filename,
				Filepath:  path,
			}
			if err := s.media.AddVideo(ctx, vid); err != nil {
				if derr := s.store.Delete(ctx, path); derr != nil {
					s.logger.WarnContext(ctx, "failed to remove orphaned video file",
						slog.String("path", path),
						slog.String("error", derr.Error()),
					)
				}
				results[i] = mediaItemResult{err: err}
				return
			}
			results[i] = mediaItemResult{path: path}
		}(i, f)
	}
	wg.Wait()

	return s.collectMediaResults(ctx, productID, "videos", files, results)
}

type mediaItemResult struct {
	path string
	err  error
}

func (s *CatalogService) collectMediaResults(ctx context.Context, productID uuid.UUID, kind string, files []UploadFile, results []mediaItemResult) (*MediaBatchResult, error) {
	res := &MediaBatchResult{Total: len(files), Paths: make([]string, 0, len(files))}
	for i, r := range results {
		if r.err != nil {
			res.Failed++
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", files[i].Filename, r.err))
			continue
		}
		res.Succeeded++
		res.Paths = append(res.Paths, r.path)
	}

	if res.Succeeded == 0 {
		return nil, apperrors.PartialFailure(fmt.Sprintf("some %s failed to save", kind), res.Errors)
	}

	if res.Failed > 0 {
		s.logger.WarnContext(ctx, "media batch completed with failures",
			slog.String("product_id", productID.String()),
			slog.String("kind", kind),
			slog.Int("succeeded", res.Succeeded),
			slog.Int("failed", res.Failed),
		)
	}

	return res, nil
}
