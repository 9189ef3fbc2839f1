package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/datemark/datemark/internal/model"
)

// ErrEmptyText is returned when the watermark text renders to an empty
// bounding box, which would place nothing on the image.
var ErrEmptyText = errors.New("watermark text bounds are empty")

// DefaultMargin is the distance in pixels kept between the text and the
// anchored image edge(s).
const DefaultMargin = 10

// jpegQuality is used when encoding JPEG output. We keep quality high
// because the tool rewrites photos that users archive.
const jpegQuality = 100

// Stamper applies a text watermark to images. A Stamper loads its font face
// once at construction and reuses it for every image in a run.
//
// A Stamper is not safe for concurrent use: the underlying font face keeps
// internal rasterization buffers. Concurrent callers create one Stamper each.
type Stamper struct {
	// color is the watermark fill, including alpha.
	color model.Color

	// anchor places the text relative to the image bounds.
	anchor model.Anchor

	// margin is the pixel distance from the anchored edge(s).
	margin int

	// fontPaths are candidate font files tried before the embedded face.
	fontPaths []string

	// face is the loaded text-rendering face.
	face font.Face

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Stamper.
type Option func(*Stamper)

// WithMargin overrides the default 10 pixel edge margin.
func WithMargin(margin int) Option {
	return func(s *Stamper) {
		s.margin = margin
	}
}

// WithFontPaths prepends candidate font files to the fallback chain.
func WithFontPaths(paths ...string) Option {
	return func(s *Stamper) {
		s.fontPaths = append(paths, DefaultFontPaths()...)
	}
}

// WithLogger sets a custom logger for the stamper.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Stamper) {
		s.logger = logger
	}
}

// NewStamper creates a Stamper that draws text at the given point size in
// the given color at the given anchor. The font fallback chain is resolved
// here, once, so stamping itself never retries anything.
func NewStamper(fontSize int, c model.Color, anchor model.Anchor, opts ...Option) (*Stamper, error) {
	s := &Stamper{
		color:  c,
		anchor: anchor,
		margin: DefaultMargin,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	face, err := LoadFace(fontSize, s.fontPaths)
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	s.face = face

	return s, nil
}

// Stamp draws the text onto a transparent overlay sized like img and
// composites the overlay over the image with standard alpha blending.
// The input image is never modified.
func (s *Stamper) Stamp(img image.Image, text string) (*image.NRGBA, error) {
	// Cloning also guarantees an alpha channel: imaging always yields NRGBA.
	base := imaging.Clone(img)
	bounds := base.Bounds()

	bbox, textW, textH := s.measure(text)
	if textW <= 0 || textH <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyText, text)
	}

	origin := s.anchor.Origin(bounds.Dx(), bounds.Dy(), textW, textH, s.margin)

	s.logger.Debug("stamping text",
		"text", text,
		"anchor", s.anchor,
		"origin", origin,
		"textWidth", textW,
		"textHeight", textH,
	)

	overlay := image.NewNRGBA(bounds)
	drawer := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(s.color.NRGBA()),
		Face: s.face,
		// Shift the dot so the ink's bounding box starts at origin.
		Dot: fixed.Point26_6{
			X: fixed.I(origin.X) - bbox.Min.X,
			Y: fixed.I(origin.Y) - bbox.Min.Y,
		},
	}
	drawer.DrawString(text)

	out := image.NewNRGBA(bounds)
	draw.Draw(out, bounds, base, bounds.Min, draw.Src)
	draw.Draw(out, bounds, overlay, bounds.Min, draw.Over)
	return out, nil
}

// measure returns the rendered text's bounding box and its pixel dimensions.
func (s *Stamper) measure(text string) (fixed.Rectangle26_6, int, int) {
	bbox, _ := font.BoundString(s.face, text)
	return bbox, (bbox.Max.X - bbox.Min.X).Ceil(), (bbox.Max.Y - bbox.Min.Y).Ceil()
}

// Save encodes img to path, choosing the codec from the file extension.
// Formats without alpha support (.jpg, .jpeg, .bmp) are flattened to an
// opaque representation first.
func Save(img image.Image, path string) error {
	if !formatHasAlpha(filepath.Ext(path)) {
		img = Flatten(img)
	}
	return imaging.Save(img, path, imaging.JPEGQuality(jpegQuality))
}

// formatHasAlpha reports whether the output format named by the extension
// can carry an alpha channel.
func formatHasAlpha(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".bmp":
		return false
	default:
		return true
	}
}

// Flatten composites img over an opaque white background, discarding the
// alpha channel for formats that cannot represent it.
func Flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	draw.Draw(flat, bounds, &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.Draw(flat, bounds, img, bounds.Min, draw.Over)
	return flat
}
