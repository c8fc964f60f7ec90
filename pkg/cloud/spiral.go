package cloud

import (
	"image"
	"math"

	"github.com/matzehuels/tagscloud/pkg/errors"
)

const (
	// DefaultCoefficient is the radius growth per radian of the spiral.
	DefaultCoefficient = 0.5

	// DefaultAngleStep is the angle increment between two spiral samples.
	DefaultAngleStep = 0.2

	// MaxSamples bounds the number of angles a spiral may have to sample
	// before it is guaranteed to leave its field.
	MaxSamples = 1 << 24
)

// SpiralOption configures a [Spiral].
type SpiralOption func(*spiralConfig)

type spiralConfig struct {
	coefficient float64
	angleStep   float64
}

// WithCoefficient sets the radius growth per radian (default 0.5).
func WithCoefficient(c float64) SpiralOption {
	return func(s *spiralConfig) { s.coefficient = c }
}

// WithAngleStep sets the angle increment in radians (default 0.2).
func WithAngleStep(step float64) SpiralOption {
	return func(s *spiralConfig) { s.angleStep = step }
}

// Spiral is a lazy, finite and non-rewindable sequence of integer points on
// an outward spiral around a center. The zero value is not usable; create
// spirals with [NewSpiral].
type Spiral struct {
	center      image.Point
	coefficient float64
	angleStep   float64

	angle    float64
	prev     image.Point
	yielded  bool
	done     bool
	produced int
}

// NewSpiral returns a spiral centered at center. The center must have
// non-negative coordinates and the coefficient and angle step must be
// positive finite numbers. Parameters that would need more than
// [MaxSamples] samples to leave the field are rejected.
func NewSpiral(center image.Point, opts ...SpiralOption) (*Spiral, error) {
	if err := errors.ValidateCenter(center); err != nil {
		return nil, err
	}

	cfg := spiralConfig{coefficient: DefaultCoefficient, angleStep: DefaultAngleStep}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !positiveFinite(cfg.coefficient) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "spiral coefficient must be a positive number, but was %v", cfg.coefficient)
	}
	if !positiveFinite(cfg.angleStep) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "spiral angle step must be a positive number, but was %v", cfg.angleStep)
	}

	// Past maxAngle the radius exceeds the field diagonal, so every sample
	// is outside the field.
	maxAngle := (math.Hypot(2*float64(center.X), 2*float64(center.Y)) + 1) / cfg.coefficient
	if maxAngle+cfg.angleStep == maxAngle || maxAngle/cfg.angleStep > MaxSamples {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"spiral with coefficient %v and angle step %v around %v needs more than %d samples",
			cfg.coefficient, cfg.angleStep, center, MaxSamples)
	}

	return &Spiral{
		center:      center,
		coefficient: cfg.coefficient,
		angleStep:   cfg.angleStep,
	}, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Next returns the next point of the spiral. The second result is false
// once the spiral has left the field; from then on every call returns
// false.
func (s *Spiral) Next() (image.Point, bool) {
	for !s.done {
		p := s.sample()
		next := s.angle + s.angleStep
		if next == s.angle {
			s.done = true
			break
		}
		s.angle = next

		if !s.inField(p) {
			s.done = true
			break
		}
		if s.yielded && p == s.prev {
			continue
		}

		s.prev, s.yielded = p, true
		s.produced++
		return p, true
	}
	return image.Point{}, false
}

// sample computes the point at the current angle. Conversion to int
// truncates toward zero.
func (s *Spiral) sample() image.Point {
	r := s.coefficient * s.angle
	return image.Point{
		X: int(r*math.Cos(s.angle)) + s.center.X,
		Y: int(r*math.Sin(s.angle)) + s.center.Y,
	}
}

// inField reports whether p lies in the closed field [0, 2cx] × [0, 2cy].
func (s *Spiral) inField(p image.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= 2*s.center.X && p.Y <= 2*s.center.Y
}

// Done reports whether the spiral has left the field.
func (s *Spiral) Done() bool { return s.done }

// Angle returns the angle, in radians, of the next sample.
func (s *Spiral) Angle() float64 { return s.angle }

// Produced returns the number of points yielded so far.
func (s *Spiral) Produced() int { return s.produced }

// Center returns the spiral's center.
func (s *Spiral) Center() image.Point { return s.center }
