package http

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/internal/service"
	apperrors "github.com/chronora/retailops/pkg/errors"
	"github.com/chronora/retailops/pkg/httputil"
)

// maxUploadMemory bounds how much of a multipart body is held in memory
// before spilling to temp files.
const maxUploadMemory = 32 << 20

// MediaHandler handles multipart media upload endpoints.
type MediaHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(catalog *service.CatalogService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{catalog: catalog, logger: logger}
}

// UploadImages handles POST /api/v1/products/upload-images with multipart
// fields "product_id" and "images".
func (h *MediaHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "images", domain.MaxImageCount*domain.MaxImageSize, h.catalog.AttachImages)
}

// UploadVideos handles POST /api/v1/products/upload-videos with multipart
// fields "product_id" and "videos".
func (h *MediaHandler) UploadVideos(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, "videos", domain.MaxVideoCount*domain.MaxVideoSize, h.catalog.AttachVideos)
}

func (h *MediaHandler) upload(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	maxBody int64,
	attach func(ctx context.Context, productID uuid.UUID, files []service.UploadFile) (*service.MediaBatchResult, error),
) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid multipart body"), h.logger)
		return
	}

	id, ok := httputil.ParseUUID(w, r.FormValue("product_id"))
	if !ok {
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger.WarnContext(r.Context(), "failed to clean up multipart temp files",
				slog.String("error", err.Error()),
			)
		}
	}()

	headers := r.MultipartForm.File[field]
	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("unreadable uploaded file: "+fh.Filename), h.logger)
			return
		}
		opened = append(opened, f)
		files = append(files, service.UploadFile{
			Filename: fh.Filename,
			Size:     fh.Size,
			Content:  f,
		})
	}

	res, err := attach(r.Context(), id, files)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}
