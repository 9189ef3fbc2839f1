package model

import "time"

// FileStatus categorizes the outcome of processing a single image file.
//
// Design decision: Per-file failures are modeled as typed results rather than
// propagated errors. The directory processor decides skip-vs-count based on
// the status tag, so a broken file can never abort the run.
type FileStatus int

const (
	// StatusStamped means the watermark was applied and the output file
	// was written successfully. Only stamped files count toward the total.
	StatusStamped FileStatus = iota

	// StatusNoCaptureDate means the image carries no readable capture
	// timestamp, so there is no watermark text. The file is skipped with
	// a warning.
	StatusNoCaptureDate

	// StatusFailed means decoding, stamping, or encoding the image failed.
	// The file is skipped and the reason is recorded.
	StatusFailed
)

// String returns a human-readable representation of the status.
func (s FileStatus) String() string {
	switch s {
	case StatusStamped:
		return "stamped"
	case StatusNoCaptureDate:
		return "no capture date"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FileResult records the outcome of one image file in a run.
type FileResult struct {
	// Name is the file's base name within the input directory.
	Name string `json:"name"`

	// SourcePath is the full path of the input image.
	SourcePath string `json:"sourcePath"`

	// OutputPath is the full path of the written output image.
	// Empty unless Status is StatusStamped.
	OutputPath string `json:"outputPath,omitempty"`

	// CaptureDate is the extracted watermark text in YYYY-MM-DD form.
	// Empty when Status is StatusNoCaptureDate.
	CaptureDate string `json:"captureDate,omitempty"`

	// Status categorizes the outcome.
	Status FileStatus `json:"status"`

	// StatusText is the human-readable form of Status, kept alongside the
	// numeric value so JSON reports are self-describing.
	StatusText string `json:"statusText"`

	// Error holds the failure reason when Status is StatusFailed.
	Error string `json:"error,omitempty"`
}

// RunReport summarizes a single directory run. It exists only for the
// duration of one invocation; nothing is persisted beyond the output images.
type RunReport struct {
	// Directory is the input directory that was processed.
	Directory string `json:"directory"`

	// OutputDir is the sibling directory the stamped images were written to.
	OutputDir string `json:"outputDir"`

	// FontSize, Color, and Anchor echo the effective run settings.
	FontSize int    `json:"fontSize"`
	Color    Color  `json:"color"`
	Anchor   Anchor `json:"anchor"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"startedAt"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// Results holds one entry per candidate file, in directory listing order.
	Results []FileResult `json:"results"`
}

// NewRunReport creates a RunReport for the given directories with the
// start time set to now.
func NewRunReport(directory, outputDir string) *RunReport {
	return &RunReport{
		Directory: directory,
		OutputDir: outputDir,
		StartedAt: time.Now(),
		Results:   make([]FileResult, 0),
	}
}

// Stamped returns the number of files successfully stamped and saved.
// This is the count the CLI reports at the end of a run.
func (r *RunReport) Stamped() int {
	return r.countStatus(StatusStamped)
}

// SkippedNoDate returns the number of files skipped for missing metadata.
func (r *RunReport) SkippedNoDate() int {
	return r.countStatus(StatusNoCaptureDate)
}

// Failed returns the number of files that failed during processing.
func (r *RunReport) Failed() int {
	return r.countStatus(StatusFailed)
}

// Total returns the number of candidate files considered.
func (r *RunReport) Total() int {
	return len(r.Results)
}

func (r *RunReport) countStatus(status FileStatus) int {
	n := 0
	for _, result := range r.Results {
		if result.Status == status {
			n++
		}
	}
	return n
}
