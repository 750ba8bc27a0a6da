// Package cleaning implements the record cleaning pipeline.
//
// A Cleaner applies five steps in fixed order: numeric coercion and
// median fill of Quantity, removal of rows without a Product Name,
// order-stable duplicate removal, date standardization to YYYY-MM-DD,
// and product name normalization (trim, title case, correction table).
//
// Cleaning never adds rows. Every removed row is returned as a
// RejectedRow carrying the step and reason, and every step reports its
// before/after row counts, so data loss is auditable rather than
// implicit in console output.
//
// A Schema describes the columns a dataset is expected to carry and is
// validated once at load time, before cleaning.
package cleaning
