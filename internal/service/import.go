package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/chronora/retailops/internal/domain"
	"github.com/chronora/retailops/internal/event"
	"github.com/chronora/retailops/internal/repository"
	apperrors "github.com/chronora/retailops/pkg/errors"
)

// maxReportedErrors bounds the error list in the import report. Every row is
// still attempted; only the report is truncated.
const maxReportedErrors = 10

// ImportService performs bulk CSV product imports.
type ImportService struct {
	products repository.ProductRepository
	events   event.Publisher
	logger   *slog.Logger
}

// NewImportService creates a new import service.
func NewImportService(products repository.ProductRepository, events event.Publisher, logger *slog.Logger) *ImportService {
	return &ImportService{products: products, events: events, logger: logger}
}

// ImportReport is the aggregate outcome of a CSV import.
type ImportReport struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// csvRow maps header column names to cell values for one data row.
type csvRow map[string]string

// parseRows buffers the whole document and returns one record per data row,
// keyed by the header column names. Ragged rows are tolerated; missing cells
// read as empty strings.
func parseRows(r io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	for i, col := range header {
		header[i] = strings.ToLower(strings.TrimSpace(col))
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row %d: %w", len(rows)+1, err)
		}

		row := make(csvRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ImportCSVFile imports products from a CSV file on disk. The file is deleted
// after parsing, regardless of the import outcome.
func (s *ImportService) ImportCSVFile(ctx context.Context, path string) (*ImportReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV file: %w", err)
	}

	rows, parseErr := parseRows(f)
	f.Close()

	if err := os.Remove(path); err != nil {
		s.logger.WarnContext(ctx, "failed to remove uploaded CSV file",
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}

	if parseErr != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("malformed CSV: %v", parseErr))
	}

	return s.importRows(ctx, rows)
}

// ImportCSV imports products from an in-memory CSV document.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*ImportReport, error) {
	rows, err := parseRows(r)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("malformed CSV: %v", err))
	}
	return s.importRows(ctx, rows)
}

// importRows attempts every row independently and reports only after all rows
// have resolved. There is no transactional boundary: a failure on one row
// never rolls back the others.
func (s *ImportService) importRows(ctx context.Context, rows []csvRow) (*ImportReport, error) {
	if len(rows) == 0 {
		return nil, apperrors.EmptyImport()
	}

	rowErrs := make([]error, len(rows))
	var wg sync.WaitGroup

	for i, row := range rows {
		wg.Add(1)
		go func(i int, row csvRow) {
			defer wg.Done()
			rowErrs[i] = s.importRow(ctx, row)
		}(i, row)
	}
	wg.Wait()

	report := &ImportReport{Total: len(rows), Errors: make([]string, 0, maxReportedErrors)}
	for i, err := range rowErrs {
		if err == nil {
			report.Success++
			continue
		}
		report.Failed++
		if len(report.Errors) < maxReportedErrors {
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %s", i+1, err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "CSV import completed",
		slog.Int("total", report.Total),
		slog.Int("success", report.Success),
		slog.Int("failed", report.Failed),
	)
	s.events.ImportCompleted(ctx, report.Total, report.Success, report.Failed)

	return report, nil
}

// errMissingRequired matches the row-level message format callers rely on in
// import reports.
//
//nolint:staticcheck // message is part of the report contract
var errMissingRequired = errors.New("Missing required fields")

// importRow validates and inserts one row. Duplicate SKUs are not pre-checked;
// they surface as row-level storage errors.
func (s *ImportService) importRow(ctx context.Context, row csvRow) error {
	if row["sku"] == "" || row["brand"] == "" || row["model"] == "" || row["category"] == "" || row["price"] == "" {
		return errMissingRequired
	}

	velocity := row["velocity"]
	if velocity == "" {
		velocity = domain.DefaultVelocity
	}
	status := row["status"]
	if status == "" {
		status = domain.DefaultStatus
	}

	p := &domain.Product{
		ID:          uuid.New(),
		SKU:         row["sku"],
		Brand:       row["brand"],
		Model:       row["model"],
		Category:    row["category"],
		Description: row["description"],
		Price:       parseFloatOrZero(row["price"]),
		Cost:        parseFloatOrZero(row["cost"]),
		Stock:       parseIntOrZero(row["stock"]),
		Velocity:    velocity,
		Status:      status,
	}

	return s.products.Create(ctx, p)
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseIntOrZero(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
