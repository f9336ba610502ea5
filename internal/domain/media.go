package domain

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media kinds partition uploaded files into separate storage directories.
const (
	MediaKindImage = "images"
	MediaKindVideo = "videos"
)

// Upload limits. A request exceeding any limit is rejected in full before any
// file is persisted.
const (
	MaxImageSize  = 10 << 20  // 10 MiB
	MaxVideoSize  = 100 << 20 // 100 MiB
	MaxImageCount = 10
	MaxVideoCount = 5
)

var allowedImageExts = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

var allowedVideoExts = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".avi": {}, ".wmv": {}, ".webm": {},
}

// ProductImage is a persisted image record for a product.
type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Filename  string    `json:"filename"`
	Filepath  string    `json:"filepath"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductVideo is a persisted video record for a product. Duration is in
// seconds and nil when unknown.
type ProductVideo struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Filename  string    `json:"filename"`
	Filepath  string    `json:"filepath"`
	Duration  *int      `json:"duration,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AllowedImageExt reports whether the filename carries an accepted image
// extension. Matching is case-insensitive.
func AllowedImageExt(filename string) bool {
	_, ok := allowedImageExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// AllowedVideoExt reports whether the filename carries an accepted video
// extension. Matching is case-insensitive.
func AllowedVideoExt(filename string) bool {
	_, ok := allowedVideoExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}
