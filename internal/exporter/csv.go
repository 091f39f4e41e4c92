package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"housingdata/internal/infrastructure"
	"housingdata/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer rooted at outputDir
func NewCSVWriter(outputDir string) *CSVWriter {
	return &CSVWriter{
		outputDir: outputDir,
		logger:    infrastructure.GetLogger().With(slog.String("component", "csv_writer")),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable exports a loaded table to <outputDir>/<table name>.csv and
// returns the written path.
func (w *CSVWriter) WriteTable(ctx context.Context, table *domain.Table, bom bool) (string, error) {
	if table == nil {
		return "", fmt.Errorf("no table to write")
	}
	headers, records := frameRecords(table.Frame)
	path := table.Name + ".csv"
	if err := w.writeCSV(ctx, path, WriteOptions{
		Headers:   headers,
		Records:   records,
		BOMPrefix: bom,
	}); err != nil {
		return "", err
	}
	return w.resolvePath(path), nil
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	return w.writeCSV(context.Background(), filePath, options)
}

func (w *CSVWriter) writeCSV(ctx context.Context, filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.InfoContext(ctx, "Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Write BOM if requested (helps Excel recognize UTF-8)
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// frameRecords converts a dataframe into a header row and row-major records
func frameRecords(df dataframe.DataFrame) ([]string, [][]string) {
	headers := df.Names()
	columns := make([][]string, len(headers))
	for j, name := range headers {
		columns[j] = columnRecords(df.Col(name))
	}

	records := make([][]string, df.Nrow())
	for i := range records {
		row := make([]string, len(headers))
		for j := range headers {
			row[j] = columns[j][i]
		}
		records[i] = row
	}
	return headers, records
}

// resolvePath resolves a path relative to the output directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) {
		return filePath
	}
	return filepath.Join(w.outputDir, filePath)
}
