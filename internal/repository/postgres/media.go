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

// MediaRepository is the pgx-backed implementation of
// repository.MediaRepository.
type MediaRepository struct {
	db database.DBTX
}

// NewMediaRepository creates a new media repository.
func NewMediaRepository(db database.DBTX) *MediaRepository {
	return &MediaRepository{db: db}
}

const addImageQuery = `
	INSERT INTO product_images (id, product_id, filename, filepath, is_primary)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at`

// AddImage inserts an image metadata row.
func (r *MediaRepository) AddImage(ctx context.Context, img *domain.ProductImage) error {
	err := r.db.QueryRow(ctx, addImageQuery,
		img.ID, img.ProductID, img.Filename, img.Filepath, img.IsPrimary,
	).Scan(&img.CreatedAt)
	if err != nil {
		return r.mapInsertErr(err, img.ProductID, "insert image")
	}
	return nil
}

const addVideoQuery = `
	INSERT INTO product_videos (id, product_id, filename, filepath, duration)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at`

// AddVideo inserts a video metadata row.
func (r *MediaRepository) AddVideo(ctx context.Context, vid *domain.ProductVideo) error {
	err := r.db.QueryRow(ctx, addVideoQuery,
		vid.ID, vid.ProductID, vid.Filename, vid.Filepath, vid.Duration,
	).Scan(&vid.CreatedAt)
	if err != nil {
		return r.mapInsertErr(err, vid.ProductID, "insert video")
	}
	return nil
}

func (r *MediaRepository) mapInsertErr(err error, productID uuid.UUID, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			return apperrors.NotFound("product", productID.String())
		case uniqueViolationCode:
			return apperrors.AlreadyExists("media file", "filepath", pgErr.Detail)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

const listImagesQuery = `
	SELECT id, product_id, filename, filepath, is_primary, created_at
	FROM product_images
	WHERE product_id = $1
	ORDER BY created_at ASC`

// ListImages returns all image records of a product in upload order.
func (r *MediaRepository) ListImages(ctx context.Context, productID uuid.UUID) ([]domain.ProductImage, error) {
	rows, err := r.db.Query(ctx, listImagesQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]domain.ProductImage, 0)
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Filename, &img.Filepath, &img.IsPrimary, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate image rows: %w", err)
	}
	return images, nil
}

const listVideosQuery = `
	SELECT id, product_id, filename, filepath, duration, created_at
	FROM product_videos
	WHERE product_id = $1
	ORDER BY created_at ASC`

// ListVideos returns all video records of a product in upload order.
func (r *MediaRepository) ListVideos(ctx context.Context, productID uuid.UUID) ([]domain.ProductVideo, error) {
	rows, err := r.db.Query(ctx, listVideosQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]domain.ProductVideo, 0)
	for rows.Next() {
		var vid domain.ProductVideo
		if err := rows.Scan(&vid.ID, &vid.ProductID, &vid.Filename, &vid.Filepath, &vid.Duration, &vid.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan video row: %w", err)
		}
		videos = append(videos, vid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate video rows: %w", err)
	}
	return videos, nil
}

const listFilepathsQuery = `
	SELECT filepath FROM product_images WHERE product_id = $1
	UNION ALL
	SELECT filepath FROM product_videos WHERE product_id = $1`

// ListFilepaths returns the storage paths of every media file attached to a
// product. Used to clean up physical files after a product is deleted.
func (r *MediaRepository) ListFilepaths(ctx context.Context, productID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, listFilepathsQuery, productID)
	if err != nil {
		return nil, fmt.Errorf("list filepaths: %w", err)
	}
	defer rows.Close()

	paths := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan filepath row: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate filepath rows: %w", err)
	}
	return paths, nil
}
