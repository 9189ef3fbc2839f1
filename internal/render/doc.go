// Package render draws the capture-date watermark onto images.
//
// The Stamper composites text over a decoded image: it measures the rendered
// text, computes the draw origin from the anchor position, draws the text
// onto a transparent overlay, and alpha-blends the overlay over the image.
// Save encodes the result, flattening to an opaque representation for output
// formats that cannot carry an alpha channel.
//
// Font loading follows an ordered candidate chain: preferred system fonts
// first, then the embedded Go Regular face, which cannot be absent. Trying a
// candidate has no side effects on failure; the first success wins.
package render
