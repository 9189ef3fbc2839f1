package log

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newBufferLogger returns a debug-level logger writing through a
// TidyPathHandler into the returned buffer. Timestamps are stripped so
// assertions stay simple.
func newBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	text := slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(NewTidyPathHandler(text)), buf
}

// TestTidyPathHandler tests path rewriting in log attributes.
func TestTidyPathHandler(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("home directory unavailable: %v", err)
	}

	t.Run("home-prefixed path is shortened", func(t *testing.T) {
		logger, buf := newBufferLogger()

		logger.Info("stamped", "file", filepath.Join(home, "photos", "IMG_0001.jpg"))

		out := buf.String()
		if strings.Contains(out, home) {
			t.Errorf("expected home directory to be rewritten, got %q", out)
		}
		if !strings.Contains(out, filepath.Join("~", "photos", "IMG_0001.jpg")) {
			t.Errorf("expected tilde path in output, got %q", out)
		}
	})

	t.Run("home directory itself is shortened", func(t *testing.T) {
		logger, buf := newBufferLogger()

		logger.Info("config", "dir", home)

		if !strings.Contains(buf.String(), "dir=~") {
			t.Errorf("expected bare tilde, got %q", buf.String())
		}
	})

	t.Run("sibling directory is not rewritten", func(t *testing.T) {
		logger, buf := newBufferLogger()

		sibling := home + "extra/file.jpg"
		logger.Info("stamped", "file", sibling)

		if !strings.Contains(buf.String(), sibling) {
			t.Errorf("expected %q untouched, got %q", sibling, buf.String())
		}
	})

	t.Run("non-path strings pass through", func(t *testing.T) {
		logger, buf := newBufferLogger()

		logger.Info("stamped", "date", "2024-03-15")

		if !strings.Contains(buf.String(), "date=2024-03-15") {
			t.Errorf("expected date untouched, got %q", buf.String())
		}
	})

	t.Run("non-string values pass through", func(t *testing.T) {
		logger, buf := newBufferLogger()

		logger.Info("done", "count", 42)

		if !strings.Contains(buf.String(), "count=42") {
			t.Errorf("expected count untouched, got %q", buf.String())
		}
	})

	t.Run("group attributes are rewritten recursively", func(t *testing.T) {
		logger, buf := newBufferLogger()

		logger.Info("stamped", slog.Group("job",
			slog.String("source", filepath.Join(home, "pics", "a.jpg")),
		))

		out := buf.String()
		if strings.Contains(out, home) {
			t.Errorf("expected group value rewritten, got %q", out)
		}
	})

	t.Run("WithAttrs rewrites attached attributes", func(t *testing.T) {
		logger, buf := newBufferLogger()

		logger.With("dir", filepath.Join(home, "photos")).Info("start")

		out := buf.String()
		if strings.Contains(out, home) {
			t.Errorf("expected attached attribute rewritten, got %q", out)
		}
	})
}

// TestNewLogger tests logger construction and level handling.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("verbose logger emits debug", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger := NewLogger(buf, true)
		logger.Debug("details")

		if !strings.Contains(buf.String(), "details") {
			t.Error("expected debug output in verbose mode")
		}
	})

	t.Run("quiet logger suppresses info", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger := NewLogger(buf, false)
		logger.Info("progress")

		if buf.Len() != 0 {
			t.Errorf("expected no output below warn level, got %q", buf.String())
		}
	})

	t.Run("quiet logger emits warnings", func(t *testing.T) {
		t.Parallel()

		buf := &bytes.Buffer{}
		logger := NewLogger(buf, false)
		logger.Warn("attention")

		if !strings.Contains(buf.String(), "attention") {
			t.Error("expected warning output")
		}
	})
}

// TestNewJSONLogger tests the JSON variant.
func TestNewJSONLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	logger := NewJSONLogger(buf, true)
	logger.Info("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}
