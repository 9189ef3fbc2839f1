package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/datemark/datemark/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with one line per file and
// a closing count, matching what users expect from a batch tool.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables per-file detail lines in the output.
	// When false, only the summary is written.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-file detail lines.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.RunReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	if w.verbose {
		w.writeFiles(&sb, report)
	}
	w.writeSummary(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run information block.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")
	sb.WriteString("                    DATEMARK REPORT\n")
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Directory:  %s\n", report.Directory))
	sb.WriteString(fmt.Sprintf("Output:     %s\n", report.OutputDir))
	sb.WriteString(fmt.Sprintf("Started:    %s\n", report.StartedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Elapsed:    %s\n", report.Elapsed.Round(time.Millisecond)))
	sb.WriteString(fmt.Sprintf("Watermark:  %dpt %s at %s\n", report.FontSize, report.Color, report.Anchor))
	sb.WriteString("\n")
}

// writeFiles writes one line per candidate file.
func (w *SimpleWriter) writeFiles(sb *strings.Builder, report *model.RunReport) {
	if report.Total() == 0 {
		return
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")
	sb.WriteString("FILES\n")
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n\n")

	for _, result := range report.Results {
		switch result.Status {
		case model.StatusStamped:
			sb.WriteString(fmt.Sprintf("  [+] %s  %s\n", result.Name, result.CaptureDate))
		case model.StatusNoCaptureDate:
			sb.WriteString(fmt.Sprintf("  [-] %s  (no capture date)\n", result.Name))
		case model.StatusFailed:
			sb.WriteString(fmt.Sprintf("  [x] %s  %s\n", result.Name, result.Error))
		}
	}
	sb.WriteString("\n")
}

// writeSummary writes the closing counts.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.RunReport) {
	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteString("\n")

	if report.SkippedNoDate() > 0 {
		sb.WriteString(fmt.Sprintf("Skipped (no capture date): %d\n", report.SkippedNoDate()))
	}
	if report.Failed() > 0 {
		sb.WriteString(fmt.Sprintf("Failed: %d\n", report.Failed()))
	}
	sb.WriteString(fmt.Sprintf("%d of %d images stamped\n", report.Stamped(), report.Total()))
}
