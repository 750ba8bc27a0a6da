package cleaning

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/pkg/contracts/domain"
)

func salesTable(rows ...domain.Row) domain.Table {
	t := domain.NewTable(domain.ColProductName, domain.ColQuantity, domain.ColDate)
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func row(product, quantity, date string) domain.Row {
	return domain.Row{
		domain.ColProductName: product,
		domain.ColQuantity:    quantity,
		domain.ColDate:        date,
	}
}

func TestCleanerMissingValues(t *testing.T) {
	cleaner := NewCleaner(nil)

	// One row misses the product, the other carries a non-numeric
	// quantity. The median is computed over the values that parsed
	// (just the 5) before any row is dropped, so the surviving row is
	// filled with 5.
	input := salesTable(
		row("", "5", "2023-01-01"),
		row(" laptop ", "x", "2023-01-02"),
	)

	result := cleaner.Clean(input)

	require.Equal(t, 1, result.Table.Len())
	got := result.Table.Rows[0]
	assert.Equal(t, "Laptop", got[domain.ColProductName])
	assert.Equal(t, "5", got[domain.ColQuantity])
	assert.Equal(t, "2023-01-02", got[domain.ColDate])

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, StepRequireProduct, result.Rejected[0].Step)
	assert.Equal(t, 0, result.Rejected[0].Index)
}

func TestCleanerUndefinedMedian(t *testing.T) {
	cleaner := NewCleaner(nil)

	// No quantity parses at all, so the median is undefined. Filling
	// is impossible and the affected rows are rejected instead of
	// surviving with a missing quantity.
	input := salesTable(
		row("Laptop", "x", "2023-01-01"),
		row("Mouse", "", "2023-01-02"),
	)

	result := cleaner.Clean(input)

	assert.True(t, result.Table.IsEmpty())
	require.Len(t, result.Rejected, 2)
	for _, rej := range result.Rejected {
		assert.Equal(t, StepCoerceQuantity, rej.Step)
		assert.Contains(t, rej.Reason, "median undefined")
	}
}

func TestCleanerMedianFill(t *testing.T) {
	cleaner := NewCleaner(nil)

	tests := []struct {
		name       string
		quantities []string
		wantFilled string
	}{
		{
			name:       "odd count",
			quantities: []string{"1", "9", "5", ""},
			wantFilled: "5",
		},
		{
			name:       "even count averages middles",
			quantities: []string{"2", "4", "6", "8", ""},
			wantFilled: "5",
		},
		{
			name:       "single value",
			quantities: []string{"7", ""},
			wantFilled: "7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := domain.NewTable(domain.ColProductName, domain.ColQuantity, domain.ColDate)
			for i, q := range tt.quantities {
				table.Append(row("P"+string(rune('A'+i)), q, "2023-01-01"))
			}

			result := cleaner.Clean(table)
			require.Equal(t, len(tt.quantities), result.Table.Len())

			last := result.Table.Rows[len(tt.quantities)-1]
			assert.Equal(t, tt.wantFilled, last[domain.ColQuantity])
		})
	}
}

func TestCleanerDuplicateRemoval(t *testing.T) {
	cleaner := NewCleaner(nil)

	input := salesTable(
		row("A", "1", "2023-01-01"),
		row("A", "1", "2023-01-01"),
		row("A", "2", "2023-01-01"),
	)

	result := cleaner.Clean(input)

	assert.Equal(t, 2, result.Table.Len())
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, StepDeduplicate, result.Rejected[0].Step)
	assert.Equal(t, 1, result.Rejected[0].Index)
}

func TestCleanerDateStandardization(t *testing.T) {
	cleaner := NewCleaner(nil)

	tests := []struct {
		name string
		raw  string
		want string // empty means the row is rejected
	}{
		{"iso passes through", "2023-01-15", "2023-01-15"},
		{"slash form", "2023/01/15", "2023-01-15"},
		{"us form", "01/15/2023", "2023-01-15"},
		{"month name", "Jan 15, 2023", "2023-01-15"},
		{"timestamp", "2023-01-15 10:30:00", "2023-01-15"},
		{"garbage rejected", "not-a-date", ""},
		{"blank rejected", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := salesTable(row("Laptop", "1", tt.raw))
			result := cleaner.Clean(input)

			if tt.want == "" {
				assert.True(t, result.Table.IsEmpty())
				require.Len(t, result.Rejected, 1)
				assert.Equal(t, StepStandardizeDates, result.Rejected[0].Step)
				return
			}
			require.Equal(t, 1, result.Table.Len())
			assert.Equal(t, tt.want, result.Table.Rows[0][domain.ColDate])
		})
	}
}

func TestCleanerNameNormalization(t *testing.T) {
	cleaner := NewCleaner(nil)

	tests := []struct {
		raw  string
		want string
	}{
		{" laptop ", "Laptop"},
		{"lptop", "Laptop"},
		{"CELPHONE", "Cellphone"},
		{"smartwatch", "SmartWatch"},
		{"keybord", "Keyboard"},
		{"monitor stand", "Monitor Stand"},
		{"Laptop", "Laptop"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			input := salesTable(row(tt.raw, "1", "2023-01-01"))
			result := cleaner.Clean(input)

			require.Equal(t, 1, result.Table.Len())
			assert.Equal(t, tt.want, result.Table.Rows[0][domain.ColProductName])
		})
	}
}

func TestCleanerInvariants(t *testing.T) {
	cleaner := NewCleaner(nil)

	input := salesTable(
		row("laptop", "5", "2023-01-01"),
		row("", "3", "2023-01-02"),
		row("mouse", "x", "03/15/2023"),
		row("mouse", "x", "03/15/2023"),
		row("keybord", "2", "bad-date"),
	)

	result := cleaner.Clean(input)

	// Cleaning only removes or fills, never adds
	assert.LessOrEqual(t, result.Table.Len(), input.Len())
	assert.Equal(t, input.Len(), result.Table.Len()+len(result.Rejected))

	isoDate := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	for _, r := range result.Table.Rows {
		assert.NotEmpty(t, r[domain.ColProductName])
		assert.NotEmpty(t, r[domain.ColQuantity])
		assert.Regexp(t, isoDate, r[domain.ColDate])
	}
}

func TestCleanerIdempotence(t *testing.T) {
	cleaner := NewCleaner(nil)

	input := salesTable(
		row(" laptop ", "5", "01/15/2023"),
		row("lptop", "", "2023-01-16"),
		row("mouse", "3", "2023-01-17"),
		row("mouse", "3", "2023-01-17"),
	)

	first := cleaner.Clean(input)
	second := cleaner.Clean(first.Table)

	assert.Equal(t, first.Table, second.Table)
	assert.Empty(t, second.Rejected)
}

func TestCleanerMissingColumnsTolerated(t *testing.T) {
	cleaner := NewCleaner(nil)

	table := domain.NewTable("Region", "Amount")
	table.Append(domain.Row{"Region": "north", "Amount": "10"})
	table.Append(domain.Row{"Region": "north", "Amount": "10"})

	result := cleaner.Clean(table)

	// Only deduplication applies when the known columns are absent
	assert.Equal(t, 1, result.Table.Len())
	require.Len(t, result.Steps, 5)
	for _, step := range result.Steps {
		if step.Step == StepDeduplicate {
			assert.Equal(t, 1, step.Rejected)
		} else {
			assert.Zero(t, step.Rejected)
		}
	}
}

func TestCleanerEmptyTable(t *testing.T) {
	cleaner := NewCleaner(nil)

	result := cleaner.Clean(salesTable())

	assert.True(t, result.Table.IsEmpty())
	assert.Empty(t, result.Rejected)
	require.Len(t, result.Steps, 5)
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		want    float64
		defined bool
	}{
		{"empty is undefined", nil, 0, false},
		{"single", []float64{3}, 3, true},
		{"odd", []float64{9, 1, 5}, 5, true},
		{"even", []float64{4, 2, 8, 6}, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, defined := median(tt.values)
			assert.Equal(t, tt.defined, defined)
			if defined {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestSchemaValidate(t *testing.T) {
	schema := SalesSchema()

	t.Run("valid header", func(t *testing.T) {
		table := domain.NewTable(domain.ColProductName, domain.ColQuantity, domain.ColDate)
		assert.Empty(t, schema.Validate(table))
	})

	t.Run("optional column may be absent", func(t *testing.T) {
		table := domain.NewTable(domain.ColProductName, domain.ColQuantity, domain.ColDate)
		assert.Empty(t, schema.Validate(table))
		_, declared := schema.Spec(domain.ColPrice)
		assert.True(t, declared)
	})

	t.Run("missing required columns reported", func(t *testing.T) {
		table := domain.NewTable(domain.ColProductName)
		errs := schema.Validate(table)
		require.Len(t, errs, 2)
		assert.Equal(t, domain.ColQuantity, errs[0].Column)
		assert.Equal(t, domain.ColDate, errs[1].Column)
		assert.Contains(t, errs[0].Error(), "required numeric column")
	})

	t.Run("extra columns allowed", func(t *testing.T) {
		table := domain.NewTable(domain.ColProductName, domain.ColQuantity, domain.ColDate, "Warehouse")
		assert.Empty(t, schema.Validate(table))
	})
}
