// Package report formats and writes run reports.
//
// Three output formats are supported: a human-readable text summary for
// terminal use, JSON for tool integration, and GitHub Flavored Markdown
// with tables and a mermaid pie chart for documentation.
//
// All writers implement the Writer interface, so the CLI chooses a format
// once and the rest of the code stays format-agnostic.
package report
