package layout

import (
	"encoding/json"
	"image"
	"os"

	"github.com/matzehuels/tagscloud/pkg/errors"
)

// Layout is the serialized form of a tag-cloud layout.
type Layout struct {
	// Field dimensions (2·center).
	Width  int `json:"width"`
	Height int `json:"height"`

	Center Point `json:"center"`

	// Rectangles in placement order.
	Rectangles []Rect `json:"rectangles"`

	// Exhausted is set when placement stopped early because the spiral
	// left the field.
	Exhausted bool `json:"exhausted,omitempty"`

	// Fill is the rectangle color the layout was produced for (optional).
	Fill string `json:"fill,omitempty"`
}

// Point is a serialized integer point.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a serialized rectangle: top-left corner plus size.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// FromRectangles builds a Layout for the field spanned by center.
func FromRectangles(center image.Point, rects []image.Rectangle) Layout {
	l := Layout{
		Width:      2 * center.X,
		Height:     2 * center.Y,
		Center:     Point{X: center.X, Y: center.Y},
		Rectangles: make([]Rect, len(rects)),
	}
	for i, r := range rects {
		l.Rectangles[i] = Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
	}
	return l
}

// Size returns the field dimensions.
func (l Layout) Size() image.Point { return image.Pt(l.Width, l.Height) }

// Rects converts the serialized rectangles back to image rectangles.
func (l Layout) Rects() []image.Rectangle {
	rects := make([]image.Rectangle, len(l.Rectangles))
	for i, r := range l.Rectangles {
		rects[i] = r.Rectangle()
	}
	return rects
}

// Rectangle converts r to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Bounds returns the smallest rectangle covering every placed rectangle, or
// the zero rectangle for an empty layout.
func (l Layout) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, r := range l.Rects() {
		b = b.Union(r)
	}
	return b
}

// Validate checks that the field and every rectangle have positive size,
// that every rectangle lies inside the field and that no two rectangles
// overlap.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidLayout, "layout field must have positive size, but was %dx%d", l.Width, l.Height)
	}
	field := image.Rectangle{Max: l.Size()}
	rects := l.Rects()
	for i, r := range l.Rectangles {
		if r.Width <= 0 || r.Height <= 0 {
			return errors.New(errors.ErrCodeInvalidLayout, "rectangle %d must have positive size, but was %dx%d", i, r.Width, r.Height)
		}
		if !rects[i].In(field) {
			return errors.New(errors.ErrCodeInvalidLayout, "rectangle %d %v lies outside field %v", i, rects[i], field)
		}
		for j := range i {
			if rects[j].Overlaps(rects[i]) {
				return errors.New(errors.ErrCodeInvalidLayout, "rectangle %d %v overlaps rectangle %d %v", i, rects[i], j, rects[j])
			}
		}
	}
	return nil
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Layout and validates it.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidLayout, err, "unmarshal layout")
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Layout{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInternal, err, "read %s", path)
	}
	return Unmarshal(data)
}
