// Package render turns placed rectangles into pixels.
//
// # Overview
//
// Rendering is a pure transformation: a field size, an ordered list of
// rectangles and colors go in, an image comes out. Nothing is
// validated and no state is kept. Rectangles that reach past the canvas are
// clipped.
//
//	img := render.Draw(image.Pt(500, 500), nil, colornames.Yellow, rects)
//
// [Fill] and [Stroke] paint onto an existing image; [Stroke] draws the
// rectangle outlines.
//
// # Colors
//
// [ParseColor] accepts SVG/CSS color names ("yellow", "steelblue") and hex
// notation ("#ffcc00", "#fc0", "ffcc00").
//
// # Output Formats
//
// Encoders for PNG, BMP, JPEG, SVG and JSON live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/tagscloud/pkg/render/sink
package render
