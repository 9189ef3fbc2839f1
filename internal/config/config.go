package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/datemark/datemark/internal/model"
)

// Default configuration values.
// These values match what most photographers want out of the box: a
// readable but unobtrusive date in the corner of the frame.
const (
	// DefaultFontSize is the watermark text size in points. At the 72 DPI
	// used for rasterization, points equal pixels, so 36 reads comfortably
	// on typical camera resolutions without dominating the photo.
	DefaultFontSize = 36

	// DefaultColorSpec is white at roughly half opacity. Semi-transparent
	// white stays legible over both dark and bright photo regions.
	DefaultColorSpec = "#FFFFFF80"

	// DefaultMargin is the pixel distance kept between the watermark text
	// and the anchored image edge(s).
	DefaultMargin = 10

	// DefaultJobs is the number of images processed concurrently.
	// Sequential processing is the default so output ordering and memory
	// usage stay predictable; users opt into parallelism via --jobs.
	DefaultJobs = 1

	// AppName is the application name used for XDG directory paths.
	AppName = "datemark"

	// OutputDirSuffix is appended to the source directory's base name to
	// form the output directory, e.g. photos/ writes to photos/photos_watermark/.
	OutputDirSuffix = "_watermark"
)

// DefaultAnchor is where the watermark is placed when no position is given.
var DefaultAnchor = model.AnchorBottomRight

// supportedExtensions lists the image file extensions datemark processes.
// Matching is case-insensitive; anything else in the directory is ignored.
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
	".bmp":  true,
}

// IsSupportedImage reports whether the file name has a supported image
// extension. The check looks at the extension only, not the file content.
func IsSupportedImage(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Config holds all configuration options for datemark.
// This struct is populated from CLI flags and the optional configuration
// file, then passed through the application via dependency injection rather
// than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., RenderConfig, ReportConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// Directory is the directory containing the photos to watermark.
	// This is the required positional argument.
	Directory string

	// FontSize is the watermark text size in points.
	FontSize int

	// Color is the parsed watermark fill color, including alpha.
	Color model.Color

	// Anchor is where the watermark is placed relative to the image bounds.
	Anchor model.Anchor

	// Margin is the pixel distance from the anchored edge(s).
	Margin int

	// Jobs is the number of images processed concurrently.
	Jobs int

	// FontPath is an explicit font file to use. When empty, the built-in
	// fallback chain is used (system Arial, DejaVu Sans, embedded Go Regular).
	FontPath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .datemark in the current directory,
	// the XDG config directory, and the user's home directory.
	ConfigFilePath string

	// DirConfigs holds per-directory configurations loaded from the config
	// file. This is populated by LoadConfigFile and merged before processing.
	DirConfigs *File

	// JSONReport enables JSON report output instead of human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of human-readable
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Parent directories are created automatically if they don't exist.
	ReportFile string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (font size, margin, the
// anchor position). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	// DefaultColorSpec is a compile-time constant that always parses.
	c, _ := model.ParseColor(DefaultColorSpec)
	return &Config{
		FontSize: DefaultFontSize,
		Color:    c,
		Anchor:   DefaultAnchor,
		Margin:   DefaultMargin,
		Jobs:     DefaultJobs,
	}
}

// OutputDir returns the directory watermarked copies are written to:
// a subdirectory of Directory named after its base name plus the suffix.
func (c *Config) OutputDir() string {
	base := filepath.Base(filepath.Clean(c.Directory))
	return filepath.Join(c.Directory, base+OutputDirSuffix)
}

// XDGDataDir returns the XDG data directory for datemark.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/datemark
// On macOS: ~/Library/Application Support/datemark
// On Windows: %LOCALAPPDATA%\datemark
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for datemark.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/datemark
// On macOS: ~/Library/Application Support/datemark
// On Windows: %APPDATA%\datemark
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any file is touched.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return ErrNoDirectory
	}

	if c.FontSize <= 0 {
		return ErrInvalidFontSize
	}

	if c.Margin < 0 {
		return ErrInvalidMargin
	}

	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}

	if !c.Anchor.Valid() {
		return ErrInvalidPosition
	}

	// JSONReport and MarkdownReport are mutually exclusive
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
