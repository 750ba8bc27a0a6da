package cleaning

import (
	"fmt"

	"salespulse/pkg/contracts/domain"
)

// Kind is the semantic type expected of a column
type Kind string

const (
	KindText    Kind = "text"
	KindNumeric Kind = "numeric"
	KindDate    Kind = "date"
)

// ColumnSpec describes one expected column
type ColumnSpec struct {
	Name     string `json:"name"`
	Kind     Kind   `json:"kind"`
	Required bool   `json:"required"`
}

// Schema is an explicit column descriptor validated once at load time,
// replacing string-literal column coupling scattered through callers.
type Schema struct {
	Name    string       `json:"name"`
	Columns []ColumnSpec `json:"columns"`
}

// ValidationError reports one schema violation
type ValidationError struct {
	Column  string `json:"column"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Message)
}

// SalesSchema describes the expected sales dataset columns
func SalesSchema() Schema {
	return Schema{
		Name: "sales",
		Columns: []ColumnSpec{
			{Name: domain.ColProductName, Kind: KindText, Required: true},
			{Name: domain.ColQuantity, Kind: KindNumeric, Required: true},
			{Name: domain.ColDate, Kind: KindDate, Required: true},
			{Name: domain.ColPrice, Kind: KindNumeric, Required: false},
		},
	}
}

// CustomerSchema describes the expected customer RFM dataset columns
func CustomerSchema() Schema {
	return Schema{
		Name: "customers",
		Columns: []ColumnSpec{
			{Name: domain.ColCustomerID, Kind: KindText, Required: true},
			{Name: domain.ColSegment, Kind: KindText, Required: true},
			{Name: domain.ColRecency, Kind: KindNumeric, Required: true},
			{Name: domain.ColFrequency, Kind: KindNumeric, Required: true},
			{Name: domain.ColMonetary, Kind: KindNumeric, Required: true},
			{Name: domain.ColRScore, Kind: KindNumeric, Required: true},
			{Name: domain.ColFScore, Kind: KindNumeric, Required: true},
			{Name: domain.ColMScore, Kind: KindNumeric, Required: true},
		},
	}
}

// Validate checks the table header against the schema. It reports
// required columns that are absent; extra columns are allowed and pass
// through cleaning untouched.
func (s Schema) Validate(t domain.Table) []ValidationError {
	var errs []ValidationError
	for _, col := range s.Columns {
		if col.Required && !t.HasColumn(col.Name) {
			errs = append(errs, ValidationError{
				Column:  col.Name,
				Message: fmt.Sprintf("required %s column is missing", col.Kind),
			})
		}
	}
	return errs
}

// Spec returns the column spec for name, if declared
func (s Schema) Spec(name string) (ColumnSpec, bool) {
	for _, col := range s.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnSpec{}, false
}
