// Package exporter persists cleaned tables and rejection audits as
// CSV files, with optional UTF-8 BOM for Excel compatibility.
package exporter
