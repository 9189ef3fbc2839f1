// Package metadata extracts capture timestamps from embedded image metadata.
//
// The only exported operation is CaptureDate, which reads a file's EXIF
// block and returns the capture date in YYYY-MM-DD form. A missing or
// unreadable timestamp is reported through the ErrNoCaptureDate sentinel so
// callers can distinguish "skip this file" from real I/O failures.
package metadata
