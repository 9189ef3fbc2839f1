package model

import "image"

// Anchor is the named placement rule for the watermark text origin relative
// to the image bounds.
//
// Design decision: We use a string type rather than iota constants because
// the values come directly from CLI flags and YAML configuration, and the
// string form is the canonical one. Unknown values are not an error; they
// fall back to AnchorBottomRight, matching the behavior users expect from
// the original tool.
type Anchor string

// The nine supported anchor positions.
const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorMiddleLeft   Anchor = "middle-left"
	AnchorCenter       Anchor = "center"
	AnchorMiddleRight  Anchor = "middle-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

// anchors is the set of recognized anchor values.
var anchors = map[Anchor]bool{
	AnchorTopLeft:      true,
	AnchorTopCenter:    true,
	AnchorTopRight:     true,
	AnchorMiddleLeft:   true,
	AnchorCenter:       true,
	AnchorMiddleRight:  true,
	AnchorBottomLeft:   true,
	AnchorBottomCenter: true,
	AnchorBottomRight:  true,
}

// ParseAnchor converts a user-supplied position string into an Anchor.
// Unrecognized values fall back to AnchorBottomRight rather than erroring.
func ParseAnchor(s string) Anchor {
	a := Anchor(s)
	if anchors[a] {
		return a
	}
	return AnchorBottomRight
}

// Valid reports whether the anchor is one of the nine recognized values.
func (a Anchor) Valid() bool {
	return anchors[a]
}

// String returns the anchor's canonical string form.
func (a Anchor) String() string {
	return string(a)
}

// Origin computes the top-left draw origin for a text box of textW x textH
// pixels inside an image of imgW x imgH pixels, keeping the given margin from
// the relevant edge(s). Centered axes ignore the margin on that axis.
// An unrecognized anchor uses the bottom-right formula.
func (a Anchor) Origin(imgW, imgH, textW, textH, margin int) image.Point {
	left := margin
	centerX := (imgW - textW) / 2
	right := imgW - textW - margin

	top := margin
	centerY := (imgH - textH) / 2
	bottom := imgH - textH - margin

	switch a {
	case AnchorTopLeft:
		return image.Point{X: left, Y: top}
	case AnchorTopCenter:
		return image.Point{X: centerX, Y: top}
	case AnchorTopRight:
		return image.Point{X: right, Y: top}
	case AnchorMiddleLeft:
		return image.Point{X: left, Y: centerY}
	case AnchorCenter:
		return image.Point{X: centerX, Y: centerY}
	case AnchorMiddleRight:
		return image.Point{X: right, Y: centerY}
	case AnchorBottomLeft:
		return image.Point{X: left, Y: bottom}
	case AnchorBottomCenter:
		return image.Point{X: centerX, Y: bottom}
	default:
		return image.Point{X: right, Y: bottom}
	}
}
