package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// TidyPathHandler wraps an slog.Handler to shorten file paths in log output.
// It intercepts log records and rewrites string attribute values that start
// with the user's home directory to use "~" before passing them to the
// underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components that accept *slog.Logger need no changes
type TidyPathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the user's home directory path, empty when unknown.
	home string
}

// NewTidyPathHandler creates a new TidyPathHandler wrapping the given handler.
// If handler is nil, the returned TidyPathHandler uses slog.Default().Handler().
// When the home directory cannot be determined, attributes pass through unchanged.
func NewTidyPathHandler(handler slog.Handler) *TidyPathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return &TidyPathHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TidyPathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *TidyPathHandler) Handle(ctx context.Context, r slog.Record) error {
	tidied := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		tidied.AddAttrs(h.tidyAttr(a))
		return true
	})

	return h.handler.Handle(ctx, tidied)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *TidyPathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	tidiedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		tidiedAttrs[i] = h.tidyAttr(a)
	}
	return &TidyPathHandler{handler: h.handler.WithAttrs(tidiedAttrs), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *TidyPathHandler) WithGroup(name string) slog.Handler {
	return &TidyPathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// tidyAttr rewrites a single attribute, recursively handling groups.
func (h *TidyPathHandler) tidyAttr(a slog.Attr) slog.Attr {
	// Handle groups recursively
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		tidiedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			tidiedAttrs[i] = h.tidyAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(tidiedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		if tidied, ok := h.tidyPath(a.Value.String()); ok {
			return slog.String(a.Key, tidied)
		}
	}

	return a
}

// tidyPath replaces the home directory prefix with "~". The prefix must end
// at a path separator so that "/home/alicesmith" is not rewritten for a home
// of "/home/alice".
func (h *TidyPathHandler) tidyPath(value string) (string, bool) {
	if h.home == "" || !strings.HasPrefix(value, h.home) {
		return "", false
	}
	rest := value[len(h.home):]
	if rest != "" && rest[0] != '/' && rest[0] != '\\' {
		return "", false
	}
	return "~" + rest, true
}

// NewLogger creates a new slog.Logger with path tidying.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or passed
// to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTidyPathHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with path tidying that outputs
// JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewTidyPathHandler(jsonHandler))
}
