// Package app provides application initialization and lifecycle
// management for the dashboard server. It wires configuration,
// logging, metrics, the dataset cache, and the HTTP surface together
// at startup and handles graceful shutdown.
//
// # Initialization Flow
//
// The typical initialization sequence:
//
//	1. Load configuration from environment and files
//	2. Initialize logging and observability
//	3. Create the dataset cache and services
//	4. Set up HTTP handlers and middleware
//	5. Configure and start the HTTP server
//	6. Set up graceful shutdown handlers
//
// # Usage
//
// The main entry point is typically:
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// The package handles SIGINT and SIGTERM signals to ensure active
// requests are completed and final metrics are flushed. All
// initialization errors are returned to the caller; the app never
// calls os.Exit() directly.
package app
