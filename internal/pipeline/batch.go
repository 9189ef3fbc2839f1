package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/datemark/datemark/internal/config"
	"github.com/datemark/datemark/internal/model"
	"github.com/datemark/datemark/internal/render"
)

// outputDirPerm is the mode for the created output directory.
const outputDirPerm = 0750

// StamperFactory creates a fresh Stamper. The processor calls it once per
// worker because a Stamper's font face is not safe for concurrent use.
type StamperFactory func() (*render.Stamper, error)

// Processor handles processing of every supported image in a directory.
// It uses errgroup to manage goroutines and respect the concurrency limit.
//
// Design decision: We use a separate Processor rather than adding directory
// handling to Pipeline because:
// 1. It keeps the Pipeline focused on single-image execution
// 2. It owns the cross-file concerns: listing, ordering, the output directory
// 3. It provides cleaner separation of concerns
type Processor struct {
	// stamperFactory creates a stamper for each image.
	stamperFactory StamperFactory

	// jobs is the maximum number of images processed concurrently.
	jobs int

	// logger is used for directory-level logging.
	logger *slog.Logger

	// mu guards writes into the results slice from worker goroutines.
	mu sync.Mutex
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorLogger sets a custom logger for directory processing.
func WithProcessorLogger(logger *slog.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithJobs sets the maximum number of images processed concurrently.
// Default is 1 (sequential) if not specified.
func WithJobs(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.jobs = n
		}
	}
}

// NewProcessor creates a new Processor.
//
// The stamperFactory function is called once per image to create a fresh
// stamper. This keeps font face state from being shared between goroutines
// and allows per-image customization if needed.
func NewProcessor(stamperFactory StamperFactory, opts ...ProcessorOption) *Processor {
	p := &Processor{
		stamperFactory: stamperFactory,
		jobs:           config.DefaultJobs,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Process watermarks every supported image in directory, writing results
// into outputDir. It is shorthand for ProcessWithCallback with no callback.
func (p *Processor) Process(ctx context.Context, directory, outputDir string) (*model.RunReport, error) {
	return p.ProcessWithCallback(ctx, directory, outputDir, nil)
}

// ProcessWithCallback watermarks every supported image in directory and
// calls the callback for each completed file. This is useful for streaming
// progress to the terminal.
//
// Candidate files are taken in directory listing order and results keep
// that order regardless of which worker finishes first. The callback is
// called from the goroutine that processed the file, so it must be safe
// for concurrent use when jobs > 1.
//
// Per-file failures never abort the run; they are recorded in the report.
// The error return indicates a directory-level problem: an unreadable
// input directory, an uncreatable output directory, or cancellation.
func (p *Processor) ProcessWithCallback(
	ctx context.Context,
	directory, outputDir string,
	callback func(result model.FileResult, index, total int),
) (*model.RunReport, error) {
	report := model.NewRunReport(directory, outputDir)

	candidates, err := listCandidates(directory)
	if err != nil {
		return nil, err
	}

	p.logger.Info("starting directory processing",
		"directory", directory,
		"output", outputDir,
		"candidates", len(candidates),
		"jobs", p.jobs,
	)

	if len(candidates) == 0 {
		report.Elapsed = time.Since(report.StartedAt)
		return report, nil
	}

	// Creating the directory up front keeps workers free of path races.
	// MkdirAll is a no-op when a previous run already created it.
	if err := os.MkdirAll(outputDir, outputDirPerm); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outputDir, err)
	}

	// Pre-allocate results slice to maintain directory listing order
	results := make([]model.FileResult, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs)

	for i, name := range candidates {
		g.Go(func() error {
			source := filepath.Join(directory, name)
			output := filepath.Join(outputDir, name)

			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				p.storeResult(results, i, cancelledResult(name, source, ctx.Err()))
				return ctx.Err()
			default:
			}

			job := NewJob(source, output)

			stamper, err := p.stamperFactory()
			if err != nil {
				job.Result.Status = model.StatusFailed
				job.Result.StatusText = model.StatusFailed.String()
				job.Result.Error = err.Error()
				p.storeResult(results, i, job.Result)
				if callback != nil {
					callback(job.Result, i, len(candidates))
				}
				return nil
			}

			pl := New(WithLogger(p.logger))
			pl.AddSteps(
				NewExtractDateStep(),
				NewDecodeStep(),
				NewStampStep(stamper),
				NewEncodeStep(),
			)

			// Per-file errors are already classified into the result
			_ = pl.Execute(ctx, job) //nolint:errcheck // Error is stored in the result

			p.storeResult(results, i, job.Result)
			if callback != nil {
				callback(job.Result, i, len(candidates))
			}
			return nil
		})
	}

	waitErr := g.Wait()

	report.Results = results
	report.Elapsed = time.Since(report.StartedAt)

	p.logger.Info("directory processing complete",
		"directory", directory,
		"stamped", report.Stamped(),
		"skipped", report.SkippedNoDate(),
		"failed", report.Failed(),
		"elapsed", report.Elapsed,
	)

	return report, waitErr
}

// storeResult writes one result into its slot under the mutex.
func (p *Processor) storeResult(results []model.FileResult, i int, result model.FileResult) {
	p.mu.Lock()
	results[i] = result
	p.mu.Unlock()
}

// cancelledResult builds the result recorded for a file that was never
// processed because the run was cancelled.
func cancelledResult(name, source string, err error) model.FileResult {
	return model.FileResult{
		Name:       name,
		SourcePath: source,
		Status:     model.StatusFailed,
		StatusText: model.StatusFailed.String(),
		Error:      err.Error(),
	}
}

// listCandidates returns the supported image file names in directory, in
// directory listing order. Subdirectories, including a previous run's
// output directory, are ignored.
func listCandidates(directory string) ([]string, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", directory, err)
	}

	candidates := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !config.IsSupportedImage(entry.Name()) {
			continue
		}
		candidates = append(candidates, entry.Name())
	}
	return candidates, nil
}
