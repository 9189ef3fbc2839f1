// Package log provides logging functionality for datemark, built on top of
// the standard slog package.
//
// This package extends slog to provide:
//   - Shortened file paths in log output (home directory shown as "~")
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Every log line datemark emits mentions at least one file path, so raw
// absolute paths make verbose output hard to scan. The TidyPathHandler
// rewrites string attributes that start with the user's home directory,
// keeping lines short without losing information.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("stamped",
//	    "file", "/home/alice/photos/IMG_0001.jpg", // Logged as "~/photos/IMG_0001.jpg"
//	    "date", "2024-03-15",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
