package sink

import (
	"bytes"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/tagscloud/pkg/layout"
)

// RenderPNG renders the layout as PNG.
func RenderPNG(l layout.Layout, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts...)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, r.rasterize(l), imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderJPEG renders the layout as JPEG. See [WithQuality].
func RenderJPEG(l layout.Layout, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts...)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, r.rasterize(l), imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
