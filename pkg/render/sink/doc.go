// Package sink provides output format renderers for tag-cloud layouts.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output format:
//
//   - PNG: Raster image, optionally scaled
//   - BMP: Uncompressed 24-bit bitmap
//   - JPEG: Lossy raster image with configurable quality
//   - SVG: One <rect> per placed rectangle
//   - JSON: The layout itself, for re-rendering later
//
// # Raster Output
//
// [RenderPNG], [RenderBMP] and [RenderJPEG] share [RasterOption]:
//
//	png, err := sink.RenderPNG(l,
//	    sink.WithFill(colornames.Yellow),
//	    sink.WithScale(2),
//	)
//
//   - [WithFill]: Rectangle color (default yellow)
//   - [WithBackground]: Canvas color (default black)
//   - [WithOutline]: One-pixel border drawn inside every rectangle
//   - [WithScale]: Output scale factor; nearest-neighbor keeps edges crisp
//
// # SVG Output
//
// [RenderSVG] writes a vector document with the field as viewBox. It accepts
// [SVGOption] values: [WithSVGFill], [WithSVGBackground], [WithSVGOutline].
//
// # Dispatch
//
// [Render] selects a sink by format name. [Formats] lists the supported
// names.
//
// [layout.Layout]: github.com/matzehuels/tagscloud/pkg/layout
package sink
