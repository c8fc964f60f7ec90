package render

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/tagscloud/pkg/errors"
)

// ParseColor parses an SVG color name or a hex color.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "color cannot be empty")
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}

	hex := name
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return color.RGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color %q", s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "unknown color %q", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(opaque(c))
	return cf.Hex()
}

// opaque strips alpha so MakeColor never sees a fully transparent color.
func opaque(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
