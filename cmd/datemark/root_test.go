package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/datemark/datemark/internal/config"
	"github.com/datemark/datemark/internal/model"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "datemark <directory>" {
			t.Errorf("expected use 'datemark <directory>', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has appearance flags with defaults", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			shorthand string
			defValue  string
		}{
			{"font-size", "s", "36"},
			{"color", "c", "#FFFFFF80"},
			{"position", "p", "bottom-right"},
			{"margin", "", "10"},
			{"jobs", "j", "1"},
			{"font", "", ""},
			{"config", "", ""},
			{"json", "", "false"},
			{"markdown", "", "false"},
			{"output", "o", ""},
			{"verbose", "v", "false"},
		}

		for _, tt := range tests {
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Errorf("expected %s flag", tt.name)
				continue
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("%s: expected shorthand %q, got %q", tt.name, tt.shorthand, flag.Shorthand)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("%s: expected default %q, got %q", tt.name, tt.defValue, flag.DefValue)
			}
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		hasInit := false
		hasVersion := false
		for _, sub := range cmd.Commands() {
			if sub.Use == "init" {
				hasInit = true
			}
			if sub.Use == "version" {
				hasVersion = true
			}
		}
		if !hasInit {
			t.Error("expected init subcommand")
		}
		if !hasVersion {
			t.Error("expected version subcommand")
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage {
			t.Error("expected SilenceUsage to be true")
		}
		if !cmd.SilenceErrors {
			t.Error("expected SilenceErrors to be true")
		}
	})
}

// parseFlags parses args against a fresh root command without running it.
func parseFlags(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()

	cmd := NewRootCmd()
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	positional := cmd.Flags().Args()
	return buildConfig(cmd, positional)
}

// TestBuildConfig tests flag handling and config file layering.
func TestBuildConfig(t *testing.T) {
	t.Run("defaults without flags", func(t *testing.T) {
		cfg, err := parseFlags(t, "/photos/vacation")
		if err != nil {
			t.Fatalf("buildConfig() returned error: %v", err)
		}

		if cfg.Directory != "/photos/vacation" {
			t.Errorf("expected directory, got %q", cfg.Directory)
		}
		if cfg.FontSize != config.DefaultFontSize {
			t.Errorf("expected default font size, got %d", cfg.FontSize)
		}
		if cfg.Anchor != model.AnchorBottomRight {
			t.Errorf("expected bottom-right, got %s", cfg.Anchor)
		}
		if cfg.Jobs != 1 {
			t.Errorf("expected 1 job, got %d", cfg.Jobs)
		}
	})

	t.Run("flags override defaults", func(t *testing.T) {
		cfg, err := parseFlags(t,
			"--font-size", "48",
			"--color", "#FF0000",
			"--position", "top-left",
			"--margin", "20",
			"--jobs", "4",
			"--json",
			"/photos/vacation",
		)
		if err != nil {
			t.Fatalf("buildConfig() returned error: %v", err)
		}

		if cfg.FontSize != 48 {
			t.Errorf("expected font size 48, got %d", cfg.FontSize)
		}
		if (cfg.Color != model.Color{R: 255, A: 255}) {
			t.Errorf("expected opaque red, got %v", cfg.Color)
		}
		if cfg.Anchor != model.AnchorTopLeft {
			t.Errorf("expected top-left, got %s", cfg.Anchor)
		}
		if cfg.Margin != 20 {
			t.Errorf("expected margin 20, got %d", cfg.Margin)
		}
		if cfg.Jobs != 4 {
			t.Errorf("expected 4 jobs, got %d", cfg.Jobs)
		}
		if !cfg.JSONReport {
			t.Error("expected JSON report enabled")
		}
	})

	t.Run("invalid color flag is an error", func(t *testing.T) {
		_, err := parseFlags(t, "--color", "not-a-color", "/photos")
		if !errors.Is(err, model.ErrInvalidColorFormat) {
			t.Errorf("expected ErrInvalidColorFormat, got %v", err)
		}
	})

	t.Run("unknown position falls back to bottom-right", func(t *testing.T) {
		cfg, err := parseFlags(t, "--position", "somewhere", "/photos")
		if err != nil {
			t.Fatalf("buildConfig() returned error: %v", err)
		}
		if cfg.Anchor != model.AnchorBottomRight {
			t.Errorf("expected fallback to bottom-right, got %s", cfg.Anchor)
		}
	})

	t.Run("explicit missing config file is an error", func(t *testing.T) {
		_, err := parseFlags(t, "--config", "/nonexistent/.datemark", "/photos")
		if err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})

	t.Run("config file layers under changed flags", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, ".datemark")
		content := `defaults:
  fontSize: 60
  position: top-left
directories:
  vacation:
    color: "#00FF00"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("write config fixture: %v", err)
		}

		cfg, err := parseFlags(t,
			"--config", configPath,
			"--font-size", "24",
			"/photos/vacation",
		)
		if err != nil {
			t.Fatalf("buildConfig() returned error: %v", err)
		}

		// The changed flag wins over the file
		if cfg.FontSize != 24 {
			t.Errorf("expected flag font size 24, got %d", cfg.FontSize)
		}
		// File settings apply where no flag was changed
		if cfg.Anchor != model.AnchorTopLeft {
			t.Errorf("expected file position top-left, got %s", cfg.Anchor)
		}
		// Per-directory entry matched on the base name
		if (cfg.Color != model.Color{G: 255, A: 255}) {
			t.Errorf("expected per-directory green, got %v", cfg.Color)
		}
	})
}

// TestRootCmdArgs tests positional argument validation.
func TestRootCmdArgs(t *testing.T) {
	t.Parallel()

	t.Run("no directory is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error without a directory argument")
		}
	})

	t.Run("two directories is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"/a", "/b"})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error for extra arguments")
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"/nonexistent/photos"})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error for a missing directory")
		}
	})

	t.Run("regular file is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatalf("write fixture: %v", err)
		}

		cmd := NewRootCmd()
		cmd.SetArgs([]string{path})
		if err := cmd.Execute(); err == nil {
			t.Error("expected error for a regular file argument")
		}
	})

	t.Run("conflicting report formats is an error", func(t *testing.T) {
		t.Parallel()

		cmd := NewRootCmd()
		cmd.SetArgs([]string{"--json", "--markdown", t.TempDir()})
		err := cmd.Execute()
		if !errors.Is(err, config.ErrConflictingReportFormats) {
			t.Errorf("expected ErrConflictingReportFormats, got %v", err)
		}
	})
}
