package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/datemark/datemark/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.RunReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeFiles(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.RunReport) {
	md.H1("datemark Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Directory", "`" + report.Directory + "`"},
			{"Output", "`" + report.OutputDir + "`"},
			{"Started", report.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", report.Elapsed.Round(time.Millisecond).String()},
			{"Font Size", strconv.Itoa(report.FontSize) + "pt"},
			{"Color", report.Color.String()},
			{"Position", report.Anchor.String()},
		},
	})
	md.PlainText("")
}

// writeSummary writes the outcome summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"🟢 Stamped", strconv.Itoa(report.Stamped())},
			{"🟡 No capture date", strconv.Itoa(report.SkippedNoDate())},
			{"🔴 Failed", strconv.Itoa(report.Failed())},
			{"**Total**", "**" + strconv.Itoa(report.Total()) + "**"},
		},
	})
	md.PlainText("")

	if report.Total() > 0 {
		w.writePieChart(md, report)
	}

	w.writeAlert(md, report)
}

// writePieChart writes a mermaid pie chart for the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.RunReport) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Run Outcome Distribution"),
		piechart.WithShowData(true),
	)

	if report.Stamped() > 0 {
		chart.LabelAndIntValue("Stamped", uint64(report.Stamped()))
	}
	if report.SkippedNoDate() > 0 {
		chart.LabelAndIntValue("No capture date", uint64(report.SkippedNoDate()))
	}
	if report.Failed() > 0 {
		chart.LabelAndIntValue("Failed", uint64(report.Failed()))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the run outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, report *model.RunReport) {
	switch {
	case report.Failed() > 0:
		md.Warningf(
			"%d file(s) failed to process. See the file table for reasons.",
			report.Failed(),
		)
	case report.SkippedNoDate() > 0:
		md.Note(fmt.Sprintf(
			"%d file(s) carry no capture date and were skipped.",
			report.SkippedNoDate(),
		))
	case report.Total() == 0:
		md.Note("No supported images were found in the directory.")
	default:
		md.Tip("All images were stamped successfully.")
	}
	md.PlainText("")
}

// writeFiles writes the per-file outcome table.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, report *model.RunReport) {
	md.H2("Files")
	md.PlainText("")

	if report.Total() == 0 {
		md.PlainText("No supported images found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(report.Results))
	for i, result := range report.Results {
		date := result.CaptureDate
		if date == "" {
			date = "-"
		}
		detail := result.Error
		if detail == "" {
			detail = "-"
		}
		rows[i] = []string{
			"`" + result.Name + "`",
			result.StatusText,
			date,
			truncateString(detail, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"File", "Status", "Capture Date", "Detail"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by datemark*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
