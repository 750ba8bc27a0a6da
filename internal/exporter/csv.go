package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"salespulse/pkg/contracts/domain"
)

// CSVWriter writes cleaned tables and rejection audits to disk
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "exporter"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes the table to path as CSV: one header row followed
// by the data rows in table order, no index column.
func (w *CSVWriter) WriteTable(path string, table domain.Table, options WriteOptions) error {
	records := make([][]string, 0, table.Len())
	for _, row := range table.Rows {
		record := make([]string, len(table.Columns))
		for i, col := range table.Columns {
			record[i] = row[col]
		}
		records = append(records, record)
	}

	w.logger.Info("writing table",
		slog.String("path", path),
		slog.Int("rows", len(records)),
		slog.Int("columns", len(table.Columns)))

	return w.write(path, table.Columns, records, options)
}

// WriteRejected writes the rejection audit: for every rejected row the
// original row index, the step that rejected it, the reason, and the
// original cell values.
func (w *CSVWriter) WriteRejected(path string, columns []string, rejected []domain.RejectedRow, options WriteOptions) error {
	headers := append([]string{"Row", "Step", "Reason"}, columns...)
	records := make([][]string, 0, len(rejected))
	for _, r := range rejected {
		record := make([]string, 0, len(headers))
		record = append(record, strconv.Itoa(r.Index), r.Step, r.Reason)
		for _, col := range columns {
			record = append(record, r.Row[col])
		}
		records = append(records, record)
	}

	w.logger.Info("writing rejection audit",
		slog.String("path", path),
		slog.Int("rows", len(records)))

	return w.write(path, headers, records, options)
}

func (w *CSVWriter) write(path string, headers []string, records [][]string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV data: %w", err)
	}
	return nil
}
