package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/datemark/datemark/internal/metadata"
	"github.com/datemark/datemark/internal/model"
)

// Job carries one image through the pipeline. Steps read the fields earlier
// steps populated and fill in their own. The embedded Result is what the run
// report keeps after the Job itself is discarded.
type Job struct {
	// Source is the full path of the input image.
	Source string

	// Output is the full path the stamped image is written to.
	Output string

	// Text is the watermark text, the capture date in YYYY-MM-DD form.
	// Populated by the date extraction step.
	Text string

	// Image is the decoded source image. Populated by the decode step.
	Image image.Image

	// Stamped is the watermarked image. Populated by the stamp step.
	Stamped *image.NRGBA

	// Result records the outcome for the run report.
	Result model.FileResult
}

// NewJob creates a Job for one source image and its output path.
func NewJob(source, output string) *Job {
	return &Job{
		Source: source,
		Output: output,
		Result: model.FileResult{
			Name:       filepath.Base(source),
			SourcePath: source,
		},
	}
}

// Step defines the interface that all pipeline steps must implement.
// Steps are executed in sequence, with each step receiving the accumulated
// job state from previous steps.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows steps to carry configuration state
// 2. It provides a Name() method for logging and debugging
// 3. It's more extensible for future features (e.g., resizing, text templates)
type Step interface {
	// Do executes the pipeline step.
	// It receives the context for cancellation, and the job to modify.
	// Returns an error if the step fails; the pipeline records the error
	// in the job's result and stops.
	Do(ctx context.Context, job *Job) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline orchestrates the execution of multiple steps for one image.
// It maintains a list of steps and executes them in order.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
// This follows the functional options pattern for clean API design.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, a default logger is created.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
// Steps should be added using AddStep or AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs all pipeline steps in sequence.
// It respects context cancellation and logs each step's execution.
//
// A step error stops the pipeline and is classified into the job's result:
// a missing capture date marks the file skipped, anything else marks it
// failed. When every step completes, the result is marked stamped.
//
// Design decision: We check context.Done() before each step rather than
// during, because the steps themselves are short CPU-bound operations.
// This keeps per-image work atomic: an image is either fully processed or
// not written at all.
func (p *Pipeline) Execute(ctx context.Context, job *Job) error {
	for _, step := range p.steps {
		// Check for cancellation before starting each step
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"file", job.Source,
				"reason", ctx.Err(),
			)
			p.recordError(job, ctx.Err())
			return ctx.Err()
		default:
			// Continue with execution
		}

		p.logger.Debug("executing step",
			"step", step.Name(),
			"file", job.Source,
		)

		if err := step.Do(ctx, job); err != nil {
			p.logStepError(step, job, err)
			p.recordError(job, err)
			return err
		}
	}

	job.Result.Status = model.StatusStamped
	job.Result.StatusText = model.StatusStamped.String()
	job.Result.OutputPath = job.Output
	return nil
}

// recordError classifies a step error into the job's result.
func (p *Pipeline) recordError(job *Job, err error) {
	if errors.Is(err, metadata.ErrNoCaptureDate) {
		job.Result.Status = model.StatusNoCaptureDate
		job.Result.StatusText = model.StatusNoCaptureDate.String()
		return
	}
	job.Result.Status = model.StatusFailed
	job.Result.StatusText = model.StatusFailed.String()
	job.Result.Error = err.Error()
}

// logStepError logs a step failure at a level matching its severity.
// A missing capture date is an expected per-file condition, not a fault.
func (p *Pipeline) logStepError(step Step, job *Job, err error) {
	if errors.Is(err, metadata.ErrNoCaptureDate) {
		p.logger.Warn("no capture date, skipping",
			"step", step.Name(),
			"file", job.Source,
		)
		return
	}
	p.logger.Error("step failed",
		"step", step.Name(),
		"file", job.Source,
		"error", err,
	)
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
