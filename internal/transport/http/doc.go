// Package http contains the chi HTTP handlers for the dashboard API:
// sales aggregates, customer segmentation, dataset cache management,
// and health checks. Errors render as RFC 7807 problem details.
package http
