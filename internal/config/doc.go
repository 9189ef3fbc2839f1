// Package config provides configuration structures and utilities for datemark.
// It defines the watermark rendering options, the batch processing settings,
// and the report generation preferences, plus the .datemark configuration
// file with per-directory overrides.
package config
