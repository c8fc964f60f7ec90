package sink

import (
	"bytes"

	"golang.org/x/image/bmp"

	"github.com/matzehuels/tagscloud/pkg/layout"
)

// RenderBMP renders the layout as a 24-bit BMP, the format the cloud
// command writes by default.
func RenderBMP(l layout.Layout, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts...)
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, r.rasterize(l)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
