package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Background is the default canvas color, matching a freshly allocated
// 24-bit bitmap.
var Background color.Color = color.Black

// Draw returns a size.X × size.Y image painted with background and every
// rectangle filled with fill. A nil background means [Background].
func Draw(size image.Point, background, fill color.Color, rects []image.Rectangle) *image.RGBA {
	if background == nil {
		background = Background
	}
	img := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	Fill(img, fill, rects)
	return img
}

// Fill paints every rectangle onto dst. Rectangles are clipped to dst's
// bounds.
func Fill(dst draw.Image, fill color.Color, rects []image.Rectangle) {
	src := image.NewUniform(fill)
	for _, r := range rects {
		draw.Draw(dst, r.Intersect(dst.Bounds()), src, image.Point{}, draw.Over)
	}
}

// Stroke paints a one-pixel border along the inside edge of every
// rectangle.
func Stroke(dst draw.Image, c color.Color, rects []image.Rectangle) {
	edges := make([]image.Rectangle, 0, 4*len(rects))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		edges = append(edges,
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
			image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
			image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
		)
	}
	Fill(dst, c, edges)
}
