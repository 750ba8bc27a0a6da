package domain

// RejectedRow records one row removed during cleaning along with the
// step that removed it and a human-readable reason. Callers can audit
// data loss instead of inferring it from console output.
type RejectedRow struct {
	Index  int    `json:"index"` // position in the raw input, 0-based
	Row    Row    `json:"row"`
	Step   string `json:"step"`
	Reason string `json:"reason"`
}

// StepReport captures the before/after row counts of one cleaning step.
type StepReport struct {
	Step       string `json:"step"`
	RowsBefore int    `json:"rows_before"`
	RowsAfter  int    `json:"rows_after"`
	Filled     int    `json:"filled,omitempty"`
	Rejected   int    `json:"rejected,omitempty"`
	Changed    int    `json:"changed,omitempty"`
}
