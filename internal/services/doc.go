// Package services implements the business logic behind the HTTP API:
// dataset access with caching, sales and customer dashboard
// aggregation, and health checks. Services accept interfaces for their
// data dependencies so handlers and tests can substitute stubs.
package services
