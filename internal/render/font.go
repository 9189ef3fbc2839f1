package render

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrInvalidFontSize is returned when a face is requested at a non-positive
// point size.
var ErrInvalidFontSize = errors.New("invalid font size: must be positive")

// fontDPI is the resolution used for rasterizing glyphs. 72 DPI makes the
// point size equal the pixel size, matching how users think about the
// --font-size flag.
const fontDPI = 72

// DefaultFontPaths returns the ordered list of system font files tried
// before the embedded fallback. Arial is preferred, then DejaVu Sans; paths
// cover the usual locations on Linux, macOS, and Windows. Missing files are
// simply skipped.
func DefaultFontPaths() []string {
	return []string{
		"arial.ttf",
		"/usr/share/fonts/truetype/msttcorefonts/Arial.ttf",
		"/usr/share/fonts/truetype/msttcorefonts/arial.ttf",
		"/System/Library/Fonts/Supplemental/Arial.ttf",
		"/Library/Fonts/Arial.ttf",
		`C:\Windows\Fonts\arial.ttf`,
		"DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	}
}

// LoadFace loads a font face at the given point size. Each candidate path is
// tried in order and the first that parses wins; when none load, the face is
// built from the embedded Go Regular font, so the chain only fails on a bad
// size. Pass nil candidates to go straight to the defaults.
func LoadFace(size int, candidates []string) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFontSize, size)
	}
	if candidates == nil {
		candidates = DefaultFontPaths()
	}

	for _, path := range candidates {
		face, err := loadFaceFile(path, size)
		if err == nil {
			return face, nil
		}
	}

	return loadEmbeddedFace(size)
}

// loadFaceFile reads and parses a single font file.
func loadFaceFile(path string, size int) (font.Face, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Candidate paths are configuration
	if err != nil {
		return nil, err
	}
	return newFace(data, size)
}

// loadEmbeddedFace builds a face from the Go Regular font compiled into the
// binary. This is the terminal link of the fallback chain.
func loadEmbeddedFace(size int) (font.Face, error) {
	return newFace(goregular.TTF, size)
}

// newFace parses font data into a face at the given size.
func newFace(data []byte, size int) (font.Face, error) {
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}
