// Package reporting summarizes cleaning runs: per-step row counts,
// inferred column types, and top-product aggregates, with a console
// renderer for the cleaning command.
package reporting
