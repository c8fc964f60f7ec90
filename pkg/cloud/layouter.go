package cloud

import (
	"image"
	"slices"

	"github.com/matzehuels/tagscloud/pkg/errors"
)

// Option configures a [Layouter].
type Option func(*layouterConfig)

type layouterConfig struct {
	spiral []SpiralOption
}

// WithSpiral passes options through to the underlying [Spiral].
func WithSpiral(opts ...SpiralOption) Option {
	return func(c *layouterConfig) { c.spiral = append(c.spiral, opts...) }
}

// Layouter places rectangles around a center without overlap.
type Layouter struct {
	center image.Point
	spiral *Spiral
	rects  []image.Rectangle
}

// NewLayouter creates a layouter for the field spanned by center.
// It fails with INVALID_ARGUMENT if a center coordinate is negative or a
// spiral option is out of range.
func NewLayouter(center image.Point, opts ...Option) (*Layouter, error) {
	var cfg layouterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	spiral, err := NewSpiral(center, cfg.spiral...)
	if err != nil {
		return nil, err
	}

	return &Layouter{center: center, spiral: spiral}, nil
}

// PutNextRectangle places a rectangle of the given size (X = width,
// Y = height) and returns its position.
//
// Errors:
//   - INVALID_ARGUMENT: size is not positive or exceeds the field
//   - PLACEMENT_EXHAUSTED: the spiral ended without a fitting position
//
// Nothing is placed when an error is returned.
func (l *Layouter) PutNextRectangle(size image.Point) (image.Rectangle, error) {
	if err := errors.ValidateSize(size, l.FieldSize()); err != nil {
		return image.Rectangle{}, err
	}

	field := l.Field()
	for {
		p, ok := l.spiral.Next()
		if !ok {
			break
		}

		rect := centeredAt(p, size)
		if !rect.In(field) || l.overlapsAny(rect) {
			continue
		}

		l.rects = append(l.rects, rect)
		return rect, nil
	}

	return image.Rectangle{}, errors.New(errors.ErrCodePlacementExhausted,
		"rectangle of size %v can't be put on field %v after %d rectangles", size, l.FieldSize(), len(l.rects))
}

// centeredAt returns the rectangle of the given size whose center is p.
func centeredAt(p, size image.Point) image.Rectangle {
	topLeft := p.Sub(size.Div(2))
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(size)}
}

func (l *Layouter) overlapsAny(rect image.Rectangle) bool {
	for _, r := range l.rects {
		if r.Overlaps(rect) {
			return true
		}
	}
	return false
}

// Center returns the fixed center of the cloud.
func (l *Layouter) Center() image.Point { return l.center }

// FieldSize returns the field dimensions (2·Center.X, 2·Center.Y).
func (l *Layouter) FieldSize() image.Point { return l.center.Mul(2) }

// Field returns the field as a rectangle anchored at the origin.
func (l *Layouter) Field() image.Rectangle {
	return image.Rectangle{Max: l.FieldSize()}
}

// Rectangles returns a copy of the placed rectangles in placement order.
func (l *Layouter) Rectangles() []image.Rectangle { return slices.Clone(l.rects) }

// Len returns the number of placed rectangles.
func (l *Layouter) Len() int { return len(l.rects) }

// Exhausted reports whether the spiral has ended. Once true, every call to
// PutNextRectangle with a valid size fails with PLACEMENT_EXHAUSTED.
func (l *Layouter) Exhausted() bool { return l.spiral.Done() }

// Candidates returns the number of spiral points examined so far.
func (l *Layouter) Candidates() int { return l.spiral.Produced() }
