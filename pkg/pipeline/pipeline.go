// Package pipeline provides the layout → render pipeline for tagscloud.
//
// This package implements the complete flow that the CLI commands share. By
// centralizing it, the `layout`, `visualize` and `render` commands behave
// identically.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: Place Count rectangles with a cloud.Layouter
//  2. Render: Encode the placed rectangles in the requested formats
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages consult the runner's cache.Cache: layouts are keyed by their
// placement inputs, artifacts by the layout hash and render settings.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Center:  image.Pt(250, 250),
//	    Size:    image.Pt(50, 40),
//	    Count:   75,
//	    Formats: []string{"bmp"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bmp := result.Artifacts["bmp"]
//
// Run individual stages:
//
//	result, err := runner.Layout(ctx, opts)
//	artifacts, err := runner.Render(ctx, result.Layout, opts)
package pipeline

import (
	"image"
	"image/color"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagscloud/pkg/cache"
	"github.com/matzehuels/tagscloud/pkg/cloud"
	"github.com/matzehuels/tagscloud/pkg/config"
	"github.com/matzehuels/tagscloud/pkg/errors"
	"github.com/matzehuels/tagscloud/pkg/layout"
	"github.com/matzehuels/tagscloud/pkg/render"
	"github.com/matzehuels/tagscloud/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the default output scale factor.
	DefaultScale = 1.0

	// DefaultQuality is the default JPEG quality.
	DefaultQuality = 90
)

// DefaultFormat is the default output format.
const DefaultFormat = sink.FormatPNG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Layout options
	Center          image.Point
	Size            image.Point   // used when Sizes is empty
	Sizes           []image.Point // cycled through when set
	Count           int
	Coefficient     float64
	AngleStep       float64
	StopOnExhausted bool

	// Render options
	Formats    []string
	Fill       color.Color
	Background color.Color
	Outline    color.Color
	Scale      float64
	Quality    int

	// Runtime options
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in log lines. It is a random UUID.
	RunID string

	// Layout is the serialized layout.
	Layout layout.Layout

	// Rectangles are the placed rectangles in placement order.
	Rectangles []image.Rectangle

	// Exhausted is set when the field ran out of room before Count
	// rectangles were placed.
	Exhausted bool

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// CacheInfo reports which stages were served from the cache.
	CacheInfo CacheInfo

	// Stats contains timing and size information.
	Stats Stats
}

// CacheInfo reports cache hits per stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Requested  int
	Placed     int
	Candidates int // spiral points examined; zero on a cache hit
	LayoutTime time.Duration
	RenderTime time.Duration
}

// FromConfig converts file/flag settings into pipeline options.
func FromConfig(cfg config.Config) (Options, error) {
	if err := cfg.Validate(); err != nil {
		return Options{}, err
	}

	opts := Options{
		Center:          image.Pt(cfg.Cloud.Center[0], cfg.Cloud.Center[1]),
		Size:            image.Pt(cfg.Cloud.Size[0], cfg.Cloud.Size[1]),
		Count:           cfg.Cloud.Count,
		Coefficient:     cfg.Spiral.Coefficient,
		AngleStep:       cfg.Spiral.AngleStep,
		StopOnExhausted: cfg.Cloud.StopOnExhausted,
		Formats:         cfg.Output.Formats,
		Scale:           cfg.Output.Scale,
		Quality:         cfg.Output.Quality,
	}
	for _, s := range cfg.Cloud.Sizes {
		opts.Sizes = append(opts.Sizes, image.Pt(s[0], s[1]))
	}

	var err error
	if opts.Fill, err = parseOptionalColor(cfg.Output.Fill); err != nil {
		return Options{}, err
	}
	if opts.Background, err = parseOptionalColor(cfg.Output.Background); err != nil {
		return Options{}, err
	}
	if opts.Outline, err = parseOptionalColor(cfg.Output.Outline); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func parseOptionalColor(s string) (color.Color, error) {
	if s == "" {
		return nil, nil
	}
	return render.ParseColor(s)
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Coefficient == 0 {
		o.Coefficient = cloud.DefaultCoefficient
	}
	if o.AngleStep == 0 {
		o.AngleStep = cloud.DefaultAngleStep
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
// Sizes are checked against the field by the layouter itself.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Count < 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "count must be nonnegative, but was %d", o.Count)
	}
	return errors.ValidateCenter(o.Center)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Fill == nil {
		o.Fill = sink.DefaultFill
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Quality == 0 {
		o.Quality = DefaultQuality
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	o.Formats = slices.Clone(o.Formats)
	for i, f := range o.Formats {
		o.Formats[i] = sink.NormalizeFormat(f)
		if err := errors.ValidateFormat(o.Formats[i], sink.ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// SizeAt returns the requested size of the i-th rectangle.
func (o *Options) SizeAt(i int) image.Point {
	if len(o.Sizes) == 0 {
		return o.Size
	}
	return o.Sizes[i%len(o.Sizes)]
}

// layoutKeyOpts returns the inputs that determine the layout.
func (o *Options) layoutKeyOpts() cache.LayoutKeyOpts {
	sizes := o.Sizes
	if len(sizes) == 0 {
		sizes = []image.Point{o.Size}
	}
	k := cache.LayoutKeyOpts{
		Center:          [2]int{o.Center.X, o.Center.Y},
		Count:           o.Count,
		Coefficient:     o.Coefficient,
		AngleStep:       o.AngleStep,
		StopOnExhausted: o.StopOnExhausted,
	}
	for _, s := range sizes {
		k.Sizes = append(k.Sizes, [2]int{s.X, s.Y})
	}
	return k
}

// artifactKeyOpts returns the render settings that change an artifact.
func (o *Options) artifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Fill:       hexOrEmpty(o.Fill),
		Background: hexOrEmpty(o.Background),
		Outline:    hexOrEmpty(o.Outline),
		Scale:      o.Scale,
		Quality:    o.Quality,
	}
}

func hexOrEmpty(c color.Color) string {
	if c == nil {
		return ""
	}
	return render.Hex(c)
}

// sinkOptions converts render settings to [sink.Options].
func (o *Options) sinkOptions() sink.Options {
	return sink.Options{
		Fill:       o.Fill,
		Background: o.Background,
		Outline:    o.Outline,
		Scale:      o.Scale,
		Quality:    o.Quality,
	}
}
