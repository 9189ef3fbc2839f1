package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/datemark/datemark/internal/config"
	"github.com/datemark/datemark/internal/log"
	"github.com/datemark/datemark/internal/model"
	"github.com/datemark/datemark/internal/pipeline"
	"github.com/datemark/datemark/internal/render"
	"github.com/datemark/datemark/internal/report"
)

// NewRootCmd creates the root command for datemark.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datemark <directory>",
		Short: "Stamp photos with their capture date",
		Long: `datemark applies a text watermark to every supported image in a directory.
The watermark is the photo's capture date in YYYY-MM-DD form, read from the
image's EXIF metadata. Images without a capture date are skipped.

Watermarked copies are written to <directory>/<name>_watermark/ using the
same file names; the originals are never modified.

Supported formats: JPEG, PNG, TIFF, BMP.

Examples:
  # Stamp every photo in ~/photos/vacation
  datemark ~/photos/vacation

  # Larger text in the bottom-left corner
  datemark --font-size 48 --position bottom-left ~/photos/vacation

  # Opaque black text, four images at a time
  datemark --color "#000000" --jobs 4 ~/photos/vacation

  # Machine-readable report written to a file
  datemark --json --output report.json ~/photos/vacation

Configuration file (.datemark) example:
  defaults:
    fontSize: 40
  directories:
    vacation:
      position: top-right
      color: "#FFD700CC"`,
		Version:       getVersion(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRootCmd,
	}

	// Watermark appearance flags
	cmd.Flags().IntP("font-size", "s", config.DefaultFontSize,
		"Watermark text size in points")
	cmd.Flags().StringP("color", "c", config.DefaultColorSpec,
		"Watermark color: #RRGGBB, #RRGGBBAA, or R,G,B[,A]")
	cmd.Flags().StringP("position", "p", config.DefaultAnchor.String(),
		"Watermark position (top-left, center, bottom-right, ...)")
	cmd.Flags().Int("margin", config.DefaultMargin,
		"Distance in pixels from the anchored image edge")
	cmd.Flags().String("font", "",
		"Font file to use (default: system Arial, then DejaVu Sans, then embedded)")

	// Processing flags
	cmd.Flags().IntP("jobs", "j", config.DefaultJobs,
		"Number of images to process concurrently")

	// Configuration file
	cmd.Flags().String("config", "",
		"Configuration file path (default: .datemark in current, XDG config, or home directory)")

	// Report flags
	cmd.Flags().Bool("json", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().Bool("markdown", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRootCmd executes the watermarking run.
func runRootCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	info, err := os.Stat(cfg.Directory)
	if err != nil {
		return fmt.Errorf("directory not found: %s", cfg.Directory)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", cfg.Directory)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runStamp(ctx, cfg, cmd.OutOrStdout(), logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Settings layer in increasing precedence: built-in
// defaults, config file defaults, per-directory config file entries, and
// finally any flag the user explicitly set.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Directory = args[0]

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load directory configurations from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently skip when no file is found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.DirConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		base := filepath.Base(filepath.Clean(cfg.Directory))
		if err := cfg.ApplyDirConfig(cfg.DirConfigs.GetDirConfig(base)); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	default:
		cfg.DirConfigs = &config.File{
			Directories: make(map[string]config.DirConfig),
		}
	}

	// Flags the user changed win over the config file
	if err := applyChangedFlags(cmd, cfg); err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyChangedFlags copies explicitly set appearance flags into the config.
// Unchanged flags keep whatever the config file layer produced.
func applyChangedFlags(cmd *cobra.Command, cfg *config.Config) error {
	var err error

	if cmd.Flags().Changed("font-size") {
		cfg.FontSize, err = cmd.Flags().GetInt("font-size")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("color") {
		spec, err := cmd.Flags().GetString("color")
		if err != nil {
			return err
		}
		cfg.Color, err = model.ParseColor(spec)
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("position") {
		spec, err := cmd.Flags().GetString("position")
		if err != nil {
			return err
		}
		// Unknown positions fall back to the default corner
		cfg.Anchor = model.ParseAnchor(spec)
	}

	if cmd.Flags().Changed("margin") {
		cfg.Margin, err = cmd.Flags().GetInt("margin")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("font") {
		cfg.FontPath, err = cmd.Flags().GetString("font")
		if err != nil {
			return err
		}
	}

	if cmd.Flags().Changed("jobs") {
		cfg.Jobs, err = cmd.Flags().GetInt("jobs")
		if err != nil {
			return err
		}
	}

	return nil
}

// runStamp processes the directory and writes the report.
func runStamp(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	outputDir := cfg.OutputDir()

	logger.Info("starting run",
		"directory", cfg.Directory,
		"output", outputDir,
		"fontSize", cfg.FontSize,
		"color", cfg.Color.String(),
		"position", cfg.Anchor.String(),
		"jobs", cfg.Jobs,
	)

	// Each worker gets its own stamper because font faces keep internal
	// rasterization state
	factory := func() (*render.Stamper, error) {
		opts := []render.Option{
			render.WithMargin(cfg.Margin),
			render.WithLogger(logger),
		}
		if cfg.FontPath != "" {
			opts = append(opts, render.WithFontPaths(cfg.FontPath))
		}
		return render.NewStamper(cfg.FontSize, cfg.Color, cfg.Anchor, opts...)
	}

	processor := pipeline.NewProcessor(factory,
		pipeline.WithJobs(cfg.Jobs),
		pipeline.WithProcessorLogger(logger),
	)

	// Progress lines go to the terminal only when they cannot corrupt a
	// structured report written to stdout.
	showProgress := cfg.ReportFile != "" || (!cfg.JSONReport && !cfg.MarkdownReport)

	var mu sync.Mutex
	callback := func(result model.FileResult, index, total int) {
		if !showProgress {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		switch result.Status {
		case model.StatusStamped:
			fmt.Fprintf(stdout, "[%d/%d] %s  %s\n", index+1, total, result.Name, result.CaptureDate)
		case model.StatusNoCaptureDate:
			fmt.Fprintf(stdout, "[%d/%d] %s  skipped (no capture date)\n", index+1, total, result.Name)
		case model.StatusFailed:
			fmt.Fprintf(stdout, "[%d/%d] %s  failed: %s\n", index+1, total, result.Name, result.Error)
		}
	}

	runReport, err := processor.ProcessWithCallback(ctx, cfg.Directory, outputDir, callback)
	if err != nil {
		return err
	}

	// Echo the effective settings into the report
	runReport.FontSize = cfg.FontSize
	runReport.Color = cfg.Color
	runReport.Anchor = cfg.Anchor

	return outputReport(cfg, runReport, stdout)
}

// outputReport writes the run report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport, stdout io.Writer) error {
	var output io.Writer = stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, getVersion(), report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(runReport)
	return err
}
