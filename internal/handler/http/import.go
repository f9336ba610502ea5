package http

import (
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/chronora/retailops/internal/service"
	apperrors "github.com/chronora/retailops/pkg/errors"
	"github.com/chronora/retailops/pkg/httputil"
)

// maxCSVSize bounds the uploaded CSV document size.
const maxCSVSize = 16 << 20

// ImportHandler handles the bulk CSV import endpoint.
type ImportHandler struct {
	importer *service.ImportService
	logger   *slog.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(importer *service.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{importer: importer, logger: logger}
}

// ImportCSV handles POST /api/v1/products/import-csv with multipart field
// "csv". The upload is spooled to a temp file which the import service
// removes after parsing.
func (h *ImportHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxCSVSize)
	if err := r.ParseMultipartForm(maxCSVSize); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid multipart body"), h.logger)
		return
	}

	f, _, err := r.FormFile("csv")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("no CSV file uploaded"), h.logger)
		return
	}
	defer f.Close()

	tmp, err := os.CreateTemp("", "import-*.csv")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if _, err := io.Copy(tmp, f); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	report, err := h.importer.ImportCSVFile(r.Context(), tmp.Name())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: report})
}
