package sink

import (
	"image/color"

	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	fill color.Color
}

// WithJSONFill records the rectangle color in the JSON output so a later
// visualize run uses the same color.
func WithJSONFill(c color.Color) JSONOption { return func(r *jsonRenderer) { r.fill = c } }

// RenderJSON exports the layout as a pretty-printed JSON document that
// [layout.Unmarshal] reads back.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fill != nil {
		l.Fill = render.Hex(r.fill)
	}
	return layout.Marshal(l)
}
