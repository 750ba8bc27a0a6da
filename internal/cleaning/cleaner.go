package cleaning

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"salespulse/pkg/contracts/domain"
)

// Step names in execution order
const (
	StepCoerceQuantity   = "coerce_quantity"
	StepRequireProduct   = "require_product"
	StepDeduplicate      = "deduplicate"
	StepStandardizeDates = "standardize_dates"
	StepNormalizeNames   = "normalize_names"
)

// defaultCorrections maps common product name misspellings to their
// canonical form, applied after title casing.
func defaultCorrections() map[string]string {
	return map[string]string{
		"Lptop":      "Laptop",
		"Celphone":   "Cellphone",
		"Smartwatch": "SmartWatch",
		"Keybord":    "Keyboard",
	}
}

// Cleaner applies the fixed cleaning sequence to a raw record table.
// Each step is independent and idempotent given already-clean input.
type Cleaner struct {
	logger      *slog.Logger
	corrections map[string]string
}

// NewCleaner creates a cleaner with the default correction table
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger:      logger.With(slog.String("component", "cleaner")),
		corrections: defaultCorrections(),
	}
}

// Result holds the cleaned table together with every rejected row and
// the per-step row accounting, so callers can audit data loss.
type Result struct {
	Table    domain.Table
	Rejected []domain.RejectedRow
	Steps    []domain.StepReport
}

// RejectedCount returns the number of rows removed across all steps
func (r Result) RejectedCount() int {
	return len(r.Rejected)
}

// workRow carries a row through the pipeline with its original index
type workRow struct {
	index int
	row   domain.Row
}

// Clean runs the full cleaning sequence. The input table is not
// mutated; cleaning only removes or fills, never adds rows.
func (c *Cleaner) Clean(input domain.Table) Result {
	table := input.Clone()

	rows := make([]workRow, 0, len(table.Rows))
	for i, row := range table.Rows {
		rows = append(rows, workRow{index: i, row: row})
	}

	result := Result{
		Rejected: make([]domain.RejectedRow, 0),
		Steps:    make([]domain.StepReport, 0, 5),
	}

	rows = c.coerceQuantity(table, rows, &result)
	rows = c.requireProduct(table, rows, &result)
	rows = c.deduplicate(table, rows, &result)
	rows = c.standardizeDates(table, rows, &result)
	rows = c.normalizeNames(table, rows, &result)

	table.Rows = make([]domain.Row, 0, len(rows))
	for _, wr := range rows {
		table.Rows = append(table.Rows, wr.row)
	}
	result.Table = table

	c.logger.Info("cleaning complete",
		slog.Int("rows_in", input.Len()),
		slog.Int("rows_out", table.Len()),
		slog.Int("rejected", len(result.Rejected)))

	return result
}

// coerceQuantity converts Quantity to numeric text, filling missing and
// non-numeric values with the median of the values that did parse. The
// median is computed before any filling and before the product-name
// drop. When no value parses at all the median is undefined and the
// affected rows are rejected, keeping the no-missing-quantity invariant.
func (c *Cleaner) coerceQuantity(table domain.Table, rows []workRow, result *Result) []workRow {
	report := domain.StepReport{Step: StepCoerceQuantity, RowsBefore: len(rows)}
	if !table.HasColumn(domain.ColQuantity) {
		report.RowsAfter = len(rows)
		result.Steps = append(result.Steps, report)
		return rows
	}

	numeric := make([]float64, 0, len(rows))
	parsed := make([]float64, len(rows))
	missing := make([]bool, len(rows))

	for i, wr := range rows {
		v, ok := parseNumber(wr.row[domain.ColQuantity])
		if ok {
			numeric = append(numeric, v)
			parsed[i] = v
		} else {
			missing[i] = true
		}
	}

	median, defined := median(numeric)

	kept := rows[:0]
	for i, wr := range rows {
		switch {
		case !missing[i]:
			wr.row[domain.ColQuantity] = formatNumber(parsed[i])
			kept = append(kept, wr)
		case defined:
			wr.row[domain.ColQuantity] = formatNumber(median)
			report.Filled++
			kept = append(kept, wr)
		default:
			result.Rejected = append(result.Rejected, domain.RejectedRow{
				Index:  wr.index,
				Row:    wr.row,
				Step:   StepCoerceQuantity,
				Reason: "quantity missing and column median undefined",
			})
			report.Rejected++
		}
	}

	if report.Filled > 0 {
		c.logger.Info("filled missing quantities with median",
			slog.Float64("median", median),
			slog.Int("filled", report.Filled))
	}

	report.RowsAfter = len(kept)
	result.Steps = append(result.Steps, report)
	return kept
}

// requireProduct drops rows whose product name is empty after trimming
func (c *Cleaner) requireProduct(table domain.Table, rows []workRow, result *Result) []workRow {
	report := domain.StepReport{Step: StepRequireProduct, RowsBefore: len(rows)}
	if !table.HasColumn(domain.ColProductName) {
		report.RowsAfter = len(rows)
		result.Steps = append(result.Steps, report)
		return rows
	}

	kept := rows[:0]
	for _, wr := range rows {
		if strings.TrimSpace(wr.row[domain.ColProductName]) == "" {
			result.Rejected = append(result.Rejected, domain.RejectedRow{
				Index:  wr.index,
				Row:    wr.row,
				Step:   StepRequireProduct,
				Reason: "missing product name",
			})
			report.Rejected++
			continue
		}
		kept = append(kept, wr)
	}

	report.RowsAfter = len(kept)
	result.Steps = append(result.Steps, report)
	return kept
}

// deduplicate collapses fully identical rows, keeping the first
// occurrence in input order.
func (c *Cleaner) deduplicate(table domain.Table, rows []workRow, result *Result) []workRow {
	report := domain.StepReport{Step: StepDeduplicate, RowsBefore: len(rows)}

	seen := make(map[string]struct{}, len(rows))
	kept := rows[:0]
	for _, wr := range rows {
		key := rowKey(table.Columns, wr.row)
		if _, dup := seen[key]; dup {
			result.Rejected = append(result.Rejected, domain.RejectedRow{
				Index:  wr.index,
				Row:    wr.row,
				Step:   StepDeduplicate,
				Reason: "duplicate of an earlier row",
			})
			report.Rejected++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, wr)
	}

	report.RowsAfter = len(kept)
	result.Steps = append(result.Steps, report)
	return kept
}

// standardizeDates parses free-form date text and reformats survivors
// to ISO; unparseable rows are rejected.
func (c *Cleaner) standardizeDates(table domain.Table, rows []workRow, result *Result) []workRow {
	report := domain.StepReport{Step: StepStandardizeDates, RowsBefore: len(rows)}
	if !table.HasColumn(domain.ColDate) {
		report.RowsAfter = len(rows)
		result.Steps = append(result.Steps, report)
		return rows
	}

	kept := rows[:0]
	for _, wr := range rows {
		raw := wr.row[domain.ColDate]
		t, ok := ParseDate(raw)
		if !ok {
			result.Rejected = append(result.Rejected, domain.RejectedRow{
				Index:  wr.index,
				Row:    wr.row,
				Step:   StepStandardizeDates,
				Reason: fmt.Sprintf("unparseable date %q", raw),
			})
			report.Rejected++
			continue
		}
		iso := t.Format(domain.DateFormat)
		if iso != raw {
			report.Changed++
		}
		wr.row[domain.ColDate] = iso
		kept = append(kept, wr)
	}

	report.RowsAfter = len(kept)
	result.Steps = append(result.Steps, report)
	return kept
}

// normalizeNames trims, title-cases and corrects product names
func (c *Cleaner) normalizeNames(table domain.Table, rows []workRow, result *Result) []workRow {
	report := domain.StepReport{Step: StepNormalizeNames, RowsBefore: len(rows), RowsAfter: len(rows)}
	if !table.HasColumn(domain.ColProductName) {
		result.Steps = append(result.Steps, report)
		return rows
	}

	// cases.Caser carries internal state, so build one per call
	titler := cases.Title(language.English)

	for _, wr := range rows {
		original := wr.row[domain.ColProductName]
		name := titler.String(strings.TrimSpace(original))
		if corrected, ok := c.corrections[name]; ok {
			name = corrected
		}
		if name != original {
			report.Changed++
		}
		wr.row[domain.ColProductName] = name
	}

	result.Steps = append(result.Steps, report)
	return rows
}

// parseNumber parses numeric text, tolerating surrounding whitespace
// and thousands separators.
func parseNumber(text string) (float64, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// formatNumber renders a numeric cell in canonical form
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// median returns the middle value of the distribution. The boolean
// result is false for an empty input, where the median is undefined.
func median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// rowKey builds a dedupe key over all columns in header order
func rowKey(columns []string, row domain.Row) string {
	var sb strings.Builder
	for i, col := range columns {
		if i > 0 {
			sb.WriteByte(0x1f)
		}
		sb.WriteString(row[col])
	}
	return sb.String()
}
