// Package config provides centralized configuration management for telcli.
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
// All environment variables follow the pattern TEL_* for namespacing:
//
//	TEL_STORE_ROOT=/srv/telemetry
//	TEL_PROCESSING_PREFIX_LENGTH=6
//	TEL_PROCESSING_VALUE_COLUMNS=Raw,Calibrated
//	TEL_LOGGING_LEVEL=info
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which resolves default file system locations relative to the executable:
//
//	paths, err := config.GetPaths()
//	reportPath := paths.GetReportPath("summary.xlsx")
//
// An explicit store root from configuration or flags always overrides the
// executable-relative default.
//
// # Validation
//
// Configuration is validated at load time against struct tags: the store
// root must be set, the sheet-name prefix length must be positive, at least
// one value column must be configured, and logging settings must name known
// levels and outputs.
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
