package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoDirectory is returned when no target directory is specified.
	// The directory is the single required positional argument.
	ErrNoDirectory = errors.New("no directory specified: provide the directory containing the photos")

	// ErrInvalidFontSize is returned when the font size is not positive.
	// A font size of zero or negative cannot be rasterized.
	ErrInvalidFontSize = errors.New("invalid font size: must be positive")

	// ErrInvalidMargin is returned when the margin is negative.
	// A negative margin would place text outside the image bounds.
	ErrInvalidMargin = errors.New("invalid margin: must be non-negative")

	// ErrInvalidJobs is returned when the worker count is not positive.
	// Zero workers would mean no files are ever processed.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrInvalidPosition is returned when the anchor position is not one of
	// the nine recognized values.
	ErrInvalidPosition = errors.New("invalid position: must be one of top-left, top-center, top-right, middle-left, center, middle-right, bottom-left, bottom-center, bottom-right")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
