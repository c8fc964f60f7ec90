package sink

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/render"
)

// DefaultFill is the rectangle color used when none is configured.
var DefaultFill color.Color = colornames.Yellow

// RasterOption configures PNG, BMP and JPEG rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	fill       color.Color
	background color.Color
	outline    color.Color
	scale      float64
	quality    int
}

// WithFill sets the rectangle color.
func WithFill(c color.Color) RasterOption {
	return func(r *rasterRenderer) { r.fill = c }
}

// WithBackground sets the canvas color.
func WithBackground(c color.Color) RasterOption {
	return func(r *rasterRenderer) { r.background = c }
}

// WithOutline strokes every rectangle with c. A nil color draws no
// outline.
func WithOutline(c color.Color) RasterOption {
	return func(r *rasterRenderer) { r.outline = c }
}

// WithScale sets the output scale factor (default 1). Non-positive values
// are ignored.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithQuality sets the JPEG quality, 1-100 (default 90).
func WithQuality(q int) RasterOption {
	return func(r *rasterRenderer) {
		if q >= 1 && q <= 100 {
			r.quality = q
		}
	}
}

func newRasterRenderer(opts ...RasterOption) rasterRenderer {
	r := rasterRenderer{
		fill:       DefaultFill,
		background: render.Background,
		scale:      1,
		quality:    90,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// rasterize draws l at its native size and applies scaling.
func (r rasterRenderer) rasterize(l layout.Layout) image.Image {
	rects := l.Rects()
	img := render.Draw(l.Size(), r.background, r.fill, rects)
	if r.outline != nil {
		render.Stroke(img, r.outline, rects)
	}

	if r.scale == 1 {
		return img
	}
	w := max(1, int(float64(l.Width)*r.scale+0.5))
	h := max(1, int(float64(l.Height)*r.scale+0.5))
	return imaging.Resize(img, w, h, imaging.NearestNeighbor)
}

// Rasterize returns the image the raster sinks encode.
func Rasterize(l layout.Layout, opts ...RasterOption) image.Image {
	return newRasterRenderer(opts...).rasterize(l)
}
