package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
)

// cloudFlags holds the layout flags shared by the layout and render
// commands. Only flags set on the command line override the config.
type cloudFlags struct {
	center          string
	size            string
	sizes           []string
	count           int
	coefficient     float64
	angleStep       float64
	stopOnExhausted bool
}

func (f *cloudFlags) register(fs *pflag.FlagSet) {
	d := config.Default()
	fs.StringVar(&f.center, "center", formatPair(d.Cloud.Center), "cloud center as X,Y")
	fs.StringVar(&f.size, "size", formatPair(d.Cloud.Size), "rectangle size as WIDTH,HEIGHT")
	fs.StringArrayVar(&f.sizes, "sizes", nil, "rectangle sizes to cycle through (repeatable WIDTH,HEIGHT)")
	fs.IntVarP(&f.count, "count", "n", d.Cloud.Count, "number of rectangles to place")
	fs.Float64Var(&f.coefficient, "coefficient", d.Spiral.Coefficient, "spiral radius growth per radian")
	fs.Float64Var(&f.angleStep, "angle-step", d.Spiral.AngleStep, "spiral angle increment in radians")
	fs.BoolVar(&f.stopOnExhausted, "stop-on-exhausted", false, "keep the rectangles placed so far when the field is full")
}

func (f *cloudFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("center") {
		if cfg.Cloud.Center, err = parsePair("center", f.center); err != nil {
			return err
		}
	}
	if flags.Changed("size") {
		if cfg.Cloud.Size, err = parsePair("size", f.size); err != nil {
			return err
		}
	}
	if flags.Changed("sizes") {
		cfg.Cloud.Sizes = cfg.Cloud.Sizes[:0]
		for _, s := range f.sizes {
			pair, err := parsePair("sizes", s)
			if err != nil {
				return err
			}
			cfg.Cloud.Sizes = append(cfg.Cloud.Sizes, pair)
		}
	}
	if flags.Changed("count") {
		cfg.Cloud.Count = f.count
	}
	if flags.Changed("coefficient") {
		cfg.Spiral.Coefficient = f.coefficient
	}
	if flags.Changed("angle-step") {
		cfg.Spiral.AngleStep = f.angleStep
	}
	if flags.Changed("stop-on-exhausted") {
		cfg.Cloud.StopOnExhausted = f.stopOnExhausted
	}
	return nil
}

// outputFlags holds the render flags shared by the visualize and render
// commands.
type outputFlags struct {
	output     string
	formats    string
	fill       string
	background string
	outline    string
	scale      float64
	quality    int
}

func (f *outputFlags) register(fs *pflag.FlagSet) {
	d := config.Default()
	fs.StringVarP(&f.output, "output", "o", d.Output.Path, "output file (single format) or base path (multiple)")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): png, bmp, jpeg, svg, json (comma-separated; default: from --output or config)")
	fs.StringVar(&f.fill, "fill", d.Output.Fill, "rectangle color (name or hex)")
	fs.StringVar(&f.background, "background", d.Output.Background, "background color (name or hex)")
	fs.StringVar(&f.outline, "outline", "", "rectangle outline color (name or hex)")
	fs.Float64Var(&f.scale, "scale", d.Output.Scale, "output scale factor (raster formats)")
	fs.IntVar(&f.quality, "quality", d.Output.Quality, "JPEG quality (1-100)")
}

func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Path = f.output
		if format := formatFromPath(f.output); format != "" {
			cfg.Output.Formats = []string{format}
		}
	}
	if flags.Changed("format") {
		cfg.Output.Formats = parseFormats(f.formats)
	}
	if flags.Changed("fill") {
		cfg.Output.Fill = f.fill
	}
	if flags.Changed("background") {
		cfg.Output.Background = f.background
	}
	if flags.Changed("outline") {
		cfg.Output.Outline = f.outline
	}
	if flags.Changed("scale") {
		cfg.Output.Scale = f.scale
	}
	if flags.Changed("quality") {
		cfg.Output.Quality = f.quality
	}
}

// parsePair parses "A,B" into two integers.
func parsePair(name, s string) ([2]int, error) {
	a, b, ok := strings.Cut(s, ",")
	if !ok {
		return [2]int{}, errors.New(errors.ErrCodeInvalidArgument, "--%s must be two comma-separated integers, but was %q", name, s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(a))
	y, errY := strconv.Atoi(strings.TrimSpace(b))
	if errX != nil || errY != nil {
		return [2]int{}, errors.New(errors.ErrCodeInvalidArgument, "--%s must be two comma-separated integers, but was %q", name, s)
	}
	return [2]int{x, y}, nil
}

func formatPair(p [2]int) string {
	return fmt.Sprintf("%d,%d", p[0], p[1])
}
