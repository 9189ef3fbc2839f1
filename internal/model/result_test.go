package model

import "testing"

// TestRunReportCounts verifies skip-vs-count bookkeeping over a mixed run.
func TestRunReportCounts(t *testing.T) {
	t.Parallel()

	r := NewRunReport("/photos/trip", "/photos/trip/trip_watermark")
	r.Results = append(r.Results,
		FileResult{Name: "a.jpg", Status: StatusStamped},
		FileResult{Name: "b.jpg", Status: StatusStamped},
		FileResult{Name: "c.png", Status: StatusNoCaptureDate},
		FileResult{Name: "d.bmp", Status: StatusFailed, Error: "decode: truncated"},
	)

	if got := r.Stamped(); got != 2 {
		t.Errorf("Stamped() = %d, want 2", got)
	}
	if got := r.SkippedNoDate(); got != 1 {
		t.Errorf("SkippedNoDate() = %d, want 1", got)
	}
	if got := r.Failed(); got != 1 {
		t.Errorf("Failed() = %d, want 1", got)
	}
	if got := r.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
}

// TestRunReportEmpty verifies that an empty run reports zero everywhere.
func TestRunReportEmpty(t *testing.T) {
	t.Parallel()

	r := NewRunReport("/photos/empty", "/photos/empty/empty_watermark")
	if r.Stamped() != 0 || r.SkippedNoDate() != 0 || r.Failed() != 0 || r.Total() != 0 {
		t.Errorf("expected all counts to be zero, got %d/%d/%d/%d",
			r.Stamped(), r.SkippedNoDate(), r.Failed(), r.Total())
	}
	if r.StartedAt.IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

// TestFileStatusString verifies the human-readable status labels.
func TestFileStatusString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status FileStatus
		want   string
	}{
		{StatusStamped, "stamped"},
		{StatusNoCaptureDate, "no capture date"},
		{StatusFailed, "failed"},
		{FileStatus(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("FileStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
