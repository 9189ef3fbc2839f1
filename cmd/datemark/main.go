// Package main provides the entry point for the datemark CLI.
//
// datemark stamps every photo in a directory with its capture date, read
// from the image's EXIF metadata, and writes the watermarked copies to a
// sibling output directory. The original files are never modified.
//
// Usage:
//
//	datemark <directory>
//	datemark --font-size 48 --position bottom-left <directory>
//
// See --help for all available options.
package main

// main is the entry point for datemark.
func main() {
	Execute()
}
