package tableio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"salespulse/pkg/contracts/domain"
)

var (
	// ErrFileNotFound indicates the input file does not exist
	ErrFileNotFound = errors.New("file does not exist")
	// ErrUnsupportedFormat indicates an extension other than .csv/.xlsx
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile indicates the file has no header row
	ErrEmptyFile = errors.New("file has no header row")
)

// Loader reads tabular files into domain tables
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new loader instance
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// Load reads the file at path into a table. The first row is the
// header; every following row is mapped against it. Rows shorter than
// the header are padded with empty cells, longer rows are truncated.
func (l *Loader) Load(path string) (domain.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return domain.Table{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return domain.Table{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = l.readCSV(path)
	case ".xlsx":
		rows, err = l.readXLSX(path)
	default:
		return domain.Table{}, fmt.Errorf("%w: %s (expected .csv or .xlsx)", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return domain.Table{}, err
	}

	if len(rows) == 0 {
		return domain.Table{}, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	table := buildTable(rows)

	l.logger.Info("loaded tabular file",
		slog.String("path", path),
		slog.Int("columns", len(table.Columns)),
		slog.Int("rows", table.Len()))

	return table, nil
}

// readCSV reads all records from a CSV file
func (l *Loader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Ragged rows are tolerated; they are padded or truncated against
	// the header when the table is built.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	// Excel (and our own -bom exports) prefix the file with a UTF-8
	// BOM; left in place it corrupts the first header cell.
	if len(records) > 0 && len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	return records, nil
}

// readXLSX reads all rows from the first sheet of an Excel workbook
func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptyFile)
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	l.logger.Debug("read workbook sheet",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return rows, nil
}

// buildTable converts raw records into a table keyed by the header row
func buildTable(records [][]string) domain.Table {
	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}

	table := domain.NewTable(header...)
	for _, record := range records[1:] {
		row := make(domain.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Append(row)
	}
	return table
}
