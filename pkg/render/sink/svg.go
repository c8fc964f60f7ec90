package sink

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/render"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	fill       color.Color
	background color.Color
	outline    color.Color
}

// WithSVGFill sets the rectangle color.
func WithSVGFill(c color.Color) SVGOption { return func(r *svgRenderer) { r.fill = c } }

// WithSVGBackground sets the background color. A nil color leaves the
// background transparent.
func WithSVGBackground(c color.Color) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithSVGOutline strokes every rectangle with c.
func WithSVGOutline(c color.Color) SVGOption { return func(r *svgRenderer) { r.outline = c } }

// RenderSVG renders the layout as an SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{fill: DefaultFill, background: render.Background}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		l.Width, l.Height, l.Width, l.Height)

	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect class="background" x="0" y="0" width="%d" height="%d" fill="%s"/>`+"\n",
			l.Width, l.Height, render.Hex(r.background))
	}

	stroke := ""
	if r.outline != nil {
		stroke = fmt.Sprintf(` stroke="%s" stroke-width="1"`, render.Hex(r.outline))
	}

	fmt.Fprintf(&buf, `  <g class="cloud" fill="%s"%s>`+"\n", render.Hex(r.fill), stroke)
	for i, rect := range l.Rectangles {
		fmt.Fprintf(&buf, `    <rect id="rect-%d" x="%d" y="%d" width="%d" height="%d"/>`+"\n",
			i, rect.X, rect.Y, rect.Width, rect.Height)
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
