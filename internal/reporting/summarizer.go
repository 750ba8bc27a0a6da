package reporting

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"salespulse/internal/cleaning"
	"salespulse/pkg/contracts/domain"
)

// Summarizer generates read-only summaries of a cleaning run: row
// counts before and after each step, inferred column types, and the
// top products by summed quantity.
type Summarizer struct {
	logger      *slog.Logger
	topProducts int
}

// SummarizerConfig holds configuration options for the Summarizer
type SummarizerConfig struct {
	TopProducts int // number of products in the top aggregate
}

// DefaultSummarizerConfig returns the default configuration
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{TopProducts: 5}
}

// NewSummarizer creates a summarizer with the given configuration
func NewSummarizer(logger *slog.Logger, cfg SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopProducts <= 0 {
		cfg.TopProducts = DefaultSummarizerConfig().TopProducts
	}
	return &Summarizer{
		logger:      logger.With(slog.String("component", "summarizer")),
		topProducts: cfg.TopProducts,
	}
}

// ProductTotal is one entry of the top products aggregate
type ProductTotal struct {
	Product  string  `json:"product"`
	Quantity float64 `json:"sales"`
}

// Summary is the complete report over one cleaning run
type Summary struct {
	RowsBefore  int                 `json:"rows_before"`
	RowsAfter   int                 `json:"rows_after"`
	Steps       []domain.StepReport `json:"steps"`
	ColumnTypes map[string]string   `json:"column_types"`
	TopProducts []ProductTotal      `json:"top_products,omitempty"`
}

// Summarize builds a summary from the raw input and the cleaning result
func (s *Summarizer) Summarize(input domain.Table, result cleaning.Result) Summary {
	summary := Summary{
		RowsBefore:  input.Len(),
		RowsAfter:   result.Table.Len(),
		Steps:       result.Steps,
		ColumnTypes: inferColumnTypes(result.Table),
	}

	if result.Table.HasColumn(domain.ColProductName) && result.Table.HasColumn(domain.ColQuantity) {
		summary.TopProducts = TopProductsByQuantity(result.Table, s.topProducts)
	}

	s.logger.Info("summary generated",
		slog.Int("rows_before", summary.RowsBefore),
		slog.Int("rows_after", summary.RowsAfter),
		slog.Int("top_products", len(summary.TopProducts)))

	return summary
}

// TopProductsByQuantity sums Quantity per product and returns the n
// largest. Ties keep the order products were first encountered in.
func TopProductsByQuantity(t domain.Table, n int) []ProductTotal {
	totals := make(map[string]float64)
	order := make([]string, 0)

	for _, row := range t.Rows {
		product := row[domain.ColProductName]
		if product == "" {
			continue
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(row[domain.ColQuantity]), 64)
		if err != nil {
			continue
		}
		if _, seen := totals[product]; !seen {
			order = append(order, product)
		}
		totals[product] += qty
	}

	ranked := make([]ProductTotal, 0, len(order))
	for _, product := range order {
		ranked = append(ranked, ProductTotal{Product: product, Quantity: totals[product]})
	}
	// Stable sort keeps first-encounter order for equal quantities
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Render writes a human-readable summary, mirroring the console output
// of the cleaning command.
func (s *Summarizer) Render(w io.Writer, sum Summary) {
	fmt.Fprintf(w, "--- Cleaning Summary ---\n")
	fmt.Fprintf(w, "Rows: %d -> %d\n", sum.RowsBefore, sum.RowsAfter)

	for _, step := range sum.Steps {
		fmt.Fprintf(w, "  %-18s %4d -> %-4d", step.Step, step.RowsBefore, step.RowsAfter)
		var notes []string
		if step.Filled > 0 {
			notes = append(notes, fmt.Sprintf("filled %d", step.Filled))
		}
		if step.Rejected > 0 {
			notes = append(notes, fmt.Sprintf("rejected %d", step.Rejected))
		}
		if step.Changed > 0 {
			notes = append(notes, fmt.Sprintf("changed %d", step.Changed))
		}
		if len(notes) > 0 {
			fmt.Fprintf(w, " (%s)", strings.Join(notes, ", "))
		}
		fmt.Fprintln(w)
	}

	if len(sum.ColumnTypes) > 0 {
		fmt.Fprintln(w, "Columns:")
		names := make([]string, 0, len(sum.ColumnTypes))
		for name := range sum.ColumnTypes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, sum.ColumnTypes[name])
		}
	}

	if len(sum.TopProducts) > 0 {
		fmt.Fprintf(w, "Top %d Sold Products:\n", len(sum.TopProducts))
		for i, p := range sum.TopProducts {
			fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, p.Product, strconv.FormatFloat(p.Quantity, 'f', -1, 64))
		}
	}
}

// inferColumnTypes guesses a semantic type per column from the cell
// values that are present.
func inferColumnTypes(t domain.Table) map[string]string {
	types := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		types[col] = inferColumnType(t, col)
	}
	return types
}

func inferColumnType(t domain.Table, col string) string {
	var (
		seen     bool
		numeric  = true
		integral = true
		date     = true
	)

	for _, row := range t.Rows {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		seen = true

		if numeric {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				numeric = false
			} else if v != float64(int64(v)) {
				integral = false
			}
		}
		if date {
			if _, ok := cleaning.ParseDate(cell); !ok {
				date = false
			}
		}
		if !numeric && !date {
			break
		}
	}

	switch {
	case !seen:
		return "string"
	case numeric && integral:
		return "int64"
	case numeric:
		return "float64"
	case date:
		return "date"
	default:
		return "string"
	}
}
