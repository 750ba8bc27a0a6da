// Package tableio loads tabular data files into domain tables.
//
// Two formats are supported: comma-separated values (.csv) and Excel
// workbooks (.xlsx). Both are read through a single Loader that maps the
// header row to column names and every following row to a column→value
// mapping. Blank cells become empty strings, the package-wide missing
// value convention.
//
// The Cache wraps a Loader with an in-memory cache keyed by file path
// and invalidated by modification time, so repeated dashboard requests
// never re-read an unchanged source file. Invalidation is also available
// explicitly for callers that replace a file in place.
package tableio
