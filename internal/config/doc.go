// Package config provides centralized configuration management for salespulse.
// It handles loading configuration from multiple sources, validation, and
// provides a type-safe API for accessing configuration values throughout the
// application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALESPULSE_* for namespacing:
//
//	SALESPULSE_SERVER_PORT=8080
//	SALESPULSE_LOGGING_LEVEL=info
//	SALESPULSE_PATHS_DATA_DIR=data
//	SALESPULSE_PATHS_SALES_FILE=cleaned_sales_data.csv
//
// The configuration file location defaults to config.yaml in the working
// directory and can be overridden with SALESPULSE_CONFIG_FILE.
package config
