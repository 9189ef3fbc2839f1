package metadata

import (
	"errors"
	"fmt"
	"os"
	"time"

	exif "github.com/dsoprea/go-exif/v3"
)

// ErrNoCaptureDate is returned when an image carries no readable capture
// timestamp: the file has no EXIF block, the block has none of the known
// date tags, or the tag value does not parse. Callers treat this as
// "skip the file", never as a reason to abort the run.
var ErrNoCaptureDate = errors.New("no capture date in image metadata")

// exifTimestampLayout is the EXIF representation of capture timestamps.
const exifTimestampLayout = "2006:01:02 15:04:05"

// dateTags lists the EXIF tag names that carry a capture timestamp, in
// preference order. DateTimeOriginal is the moment the shutter fired;
// the other two are acceptable stand-ins when it is absent.
var dateTags = []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"}

// CaptureDate reads the image at path and returns its capture date formatted
// as YYYY-MM-DD. It returns ErrNoCaptureDate when the metadata is missing or
// unparseable, and wraps the underlying error when the file itself cannot
// be read.
func CaptureDate(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from directory enumeration
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return captureDateFromBytes(data)
}

// captureDateFromBytes extracts the capture date from raw image bytes.
func captureDateFromBytes(data []byte) (string, error) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return "", ErrNoCaptureDate
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return "", ErrNoCaptureDate
	}

	// Collect candidate values first so the tag preference order wins over
	// the order tags happen to appear in the file.
	values := make(map[string]string, len(dateTags))
	for _, entry := range entries {
		for _, tag := range dateTags {
			if entry.TagName == tag && entry.Formatted != "" {
				values[tag] = entry.Formatted
			}
		}
	}

	for _, tag := range dateTags {
		value, ok := values[tag]
		if !ok {
			continue
		}
		if date, err := formatCaptureDate(value); err == nil {
			return date, nil
		}
	}

	return "", ErrNoCaptureDate
}

// formatCaptureDate reformats an EXIF "YYYY:MM:DD HH:MM:SS" timestamp to
// the "YYYY-MM-DD" watermark text.
func formatCaptureDate(value string) (string, error) {
	ts, err := time.Parse(exifTimestampLayout, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrNoCaptureDate, value)
	}
	return ts.Format("2006-01-02"), nil
}
