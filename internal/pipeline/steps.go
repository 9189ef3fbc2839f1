package pipeline

import (
	"context"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/datemark/datemark/internal/metadata"
	"github.com/datemark/datemark/internal/render"
)

// ExtractDateStep reads the capture date from the image's EXIF metadata.
// This step runs first because a file without a capture date is skipped
// before any pixel data is decoded.
type ExtractDateStep struct{}

// NewExtractDateStep creates a new date extraction step.
func NewExtractDateStep() *ExtractDateStep {
	return &ExtractDateStep{}
}

// Name returns the step name.
func (s *ExtractDateStep) Name() string {
	return "extract_date"
}

// Do reads the capture date and stores it as the watermark text.
func (s *ExtractDateStep) Do(_ context.Context, job *Job) error {
	date, err := metadata.CaptureDate(job.Source)
	if err != nil {
		return err
	}
	job.Text = date
	job.Result.CaptureDate = date
	return nil
}

// DecodeStep loads the source image into memory.
//
// Design decision: Decoding is separate from stamping so that decode
// failures (truncated files, wrong extensions) are attributed to the file
// itself rather than to the watermark renderer.
type DecodeStep struct{}

// NewDecodeStep creates a new decode step.
func NewDecodeStep() *DecodeStep {
	return &DecodeStep{}
}

// Name returns the step name.
func (s *DecodeStep) Name() string {
	return "decode"
}

// Do decodes the source image.
func (s *DecodeStep) Do(_ context.Context, job *Job) error {
	img, err := imaging.Open(job.Source)
	if err != nil {
		return fmt.Errorf("decode %s: %w", job.Source, err)
	}
	job.Image = img
	return nil
}

// StampStep draws the capture date onto the decoded image.
// The step borrows a Stamper rather than owning one: stampers hold a font
// face that is not safe for concurrent use, so the processor hands each
// worker its own.
type StampStep struct {
	stamper *render.Stamper
}

// NewStampStep creates a new stamp step using the given stamper.
func NewStampStep(stamper *render.Stamper) *StampStep {
	return &StampStep{stamper: stamper}
}

// Name returns the step name.
func (s *StampStep) Name() string {
	return "stamp"
}

// Do applies the watermark to the decoded image.
func (s *StampStep) Do(_ context.Context, job *Job) error {
	stamped, err := s.stamper.Stamp(job.Image, job.Text)
	if err != nil {
		return fmt.Errorf("stamp %s: %w", job.Source, err)
	}
	job.Stamped = stamped
	return nil
}

// EncodeStep writes the stamped image to the output path.
// The output format follows the output file's extension, which matches the
// source file's, so a .png stays a .png.
type EncodeStep struct{}

// NewEncodeStep creates a new encode step.
func NewEncodeStep() *EncodeStep {
	return &EncodeStep{}
}

// Name returns the step name.
func (s *EncodeStep) Name() string {
	return "encode"
}

// Do encodes the stamped image to the job's output path.
func (s *EncodeStep) Do(_ context.Context, job *Job) error {
	if err := render.Save(job.Stamped, job.Output); err != nil {
		return fmt.Errorf("encode %s: %w", job.Output, err)
	}
	return nil
}
