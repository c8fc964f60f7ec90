package sink

import (
	"image/color"
	"slices"

	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
)

// Format names.
const (
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatBMP:  true,
	FormatJPEG: true,
	FormatSVG:  true,
	FormatJSON: true,
}

// Formats returns the supported format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// NormalizeFormat maps file extensions and aliases ("jpg", ".png") to a
// format name.
func NormalizeFormat(s string) string {
	if len(s) > 0 && s[0] == '.' {
		s = s[1:]
	}
	if s == "jpg" {
		return FormatJPEG
	}
	return s
}

// Options holds the settings shared by all sinks.
type Options struct {
	Fill       color.Color
	Background color.Color
	Scale      float64
	Quality    int
	Outline    color.Color
}

// Render encodes l in the given format.
func Render(l layout.Layout, format string, opts Options) ([]byte, error) {
	format = NormalizeFormat(format)
	if err := errors.ValidateFormat(format, ValidFormats); err != nil {
		return nil, err
	}

	var raster []RasterOption
	if opts.Fill != nil {
		raster = append(raster, WithFill(opts.Fill))
	}
	if opts.Background != nil {
		raster = append(raster, WithBackground(opts.Background))
	}
	if opts.Outline != nil {
		raster = append(raster, WithOutline(opts.Outline))
	}
	raster = append(raster, WithScale(opts.Scale), WithQuality(opts.Quality))

	switch format {
	case FormatPNG:
		return RenderPNG(l, raster...)
	case FormatBMP:
		return RenderBMP(l, raster...)
	case FormatJPEG:
		return RenderJPEG(l, raster...)
	case FormatSVG:
		svg := []SVGOption{}
		if opts.Fill != nil {
			svg = append(svg, WithSVGFill(opts.Fill))
		}
		if opts.Background != nil {
			svg = append(svg, WithSVGBackground(opts.Background))
		}
		if opts.Outline != nil {
			svg = append(svg, WithSVGOutline(opts.Outline))
		}
		return RenderSVG(l, svg...), nil
	default:
		var jsonOpts []JSONOption
		if opts.Fill != nil {
			jsonOpts = append(jsonOpts, WithJSONFill(opts.Fill))
		}
		return RenderJSON(l, jsonOpts...)
	}
}
