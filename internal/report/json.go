package report

import (
	"encoding/json"
	"io"

	"github.com/datemark/datemark/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// version is included in the output so consumers can tell which
	// datemark release produced the report.
	version string

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
// The version string identifies the datemark build in the output.
func NewJSONWriter(output io.Writer, version string, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		version:    version,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport is a wrapper for the run report with additional metadata.
//
// Design decision: We wrap the report rather than modifying RunReport
// because this allows us to add output-specific fields without polluting
// the core data structure.
type JSONReport struct {
	// Version is the datemark version that generated this report.
	Version string `json:"version"`

	// Summary holds the run counts for quick access.
	Summary JSONSummary `json:"summary"`

	// Report is the full run report.
	Report *model.RunReport `json:"report"`
}

// JSONSummary holds the aggregate counts of a run.
type JSONSummary struct {
	Total   int `json:"total"`
	Stamped int `json:"stamped"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Write outputs the report in JSON format, wrapped with metadata.
func (w *JSONWriter) Write(report *model.RunReport) (int, error) {
	wrapped := &JSONReport{
		Version: w.version,
		Summary: JSONSummary{
			Total:   report.Total(),
			Stamped: report.Stamped(),
			Skipped: report.SkippedNoDate(),
			Failed:  report.Failed(),
		},
		Report: report,
	}

	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(wrapped, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(wrapped)
	}

	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
