package cloud

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/matzehuels/tagscloud/pkg/errors"
)

var center = image.Pt(500, 500)

func newTestLayouter(t *testing.T) *Layouter {
	t.Helper()
	l, err := NewLayouter(center)
	if err != nil {
		t.Fatalf("NewLayouter(%v): %v", center, err)
	}
	return l
}

func put(t *testing.T, l *Layouter, size image.Point) image.Rectangle {
	t.Helper()
	r, err := l.PutNextRectangle(size)
	if err != nil {
		t.Fatalf("PutNextRectangle(%v): %v", size, err)
	}
	return r
}

func randomSizes(maxW, maxH, count int) []image.Point {
	rng := rand.New(rand.NewPCG(42, 42))
	sizes := make([]image.Point, count)
	for i := range sizes {
		sizes[i] = image.Pt(rng.IntN(maxW)+1, rng.IntN(maxH)+1)
	}
	return sizes
}

func assertNoOverlap(t *testing.T, rects []image.Rectangle) {
	t.Helper()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Overlaps(rects[j]) {
				t.Errorf("rectangles %d %v and %d %v overlap", i, rects[i], j, rects[j])
			}
		}
	}
}

func assertInField(t *testing.T, l *Layouter, rects []image.Rectangle) {
	t.Helper()
	for i, r := range rects {
		if !r.In(l.Field()) {
			t.Errorf("rectangle %d %v is outside field %v", i, r, l.Field())
		}
	}
}

func TestNewLayouterRejectsNegativeCenter(t *testing.T) {
	for _, c := range []image.Point{image.Pt(0, -1), image.Pt(-1, 0), image.Pt(-3, -3)} {
		_, err := NewLayouter(c)
		if !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("NewLayouter(%v) error = %v, want %s", c, err, errors.ErrCodeInvalidArgument)
		}
	}
}

func TestNewLayouterRejectsBadSpiral(t *testing.T) {
	for _, opt := range []SpiralOption{WithAngleStep(-1), WithAngleStep(1e-20), WithCoefficient(1e-300)} {
		_, err := NewLayouter(image.Pt(5, 5), WithSpiral(opt))
		if !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("NewLayouter() error = %v, want %s", err, errors.ErrCodeInvalidArgument)
		}
	}
}

func TestCenterIsCentralPointOfField(t *testing.T) {
	l := newTestLayouter(t)

	size := l.FieldSize()
	if got := image.Pt(size.X/2, size.Y/2); got != l.Center() {
		t.Errorf("field center = %v, want %v", got, l.Center())
	}
	if l.Field() != image.Rect(0, 0, 1000, 1000) {
		t.Errorf("Field() = %v, want (0,0)-(1000,1000)", l.Field())
	}
}

func TestPutNextRectangleValidation(t *testing.T) {
	tests := []struct {
		name string
		size image.Point
	}{
		{"bigger than field", image.Pt(1001, 1001)},
		{"wider than field", image.Pt(1001, 10)},
		{"taller than field", image.Pt(10, 1001)},
		{"zero width", image.Pt(0, 10)},
		{"negative height", image.Pt(10, -1)},
		{"zero size", image.Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestLayouter(t)
			_, err := l.PutNextRectangle(tt.size)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Fatalf("PutNextRectangle(%v) error = %v, want %s", tt.size, err, errors.ErrCodeInvalidArgument)
			}
			if l.Len() != 0 || l.Candidates() != 0 {
				t.Errorf("invalid request changed state: len=%d candidates=%d", l.Len(), l.Candidates())
			}
		})
	}
}

func TestPutNextRectanglePutsFirstRectangleInCenter(t *testing.T) {
	sizes := []image.Point{image.Pt(10, 10), image.Pt(1, 1), image.Pt(11, 7), image.Pt(1000, 1000)}
	for _, size := range sizes {
		l := newTestLayouter(t)
		r := put(t, l, size)
		if !center.In(r) {
			t.Errorf("first rectangle %v of size %v does not contain center %v", r, size, center)
		}
	}

	l := newTestLayouter(t)
	if r := put(t, l, image.Pt(50, 50)); r != image.Rect(475, 475, 525, 525) {
		t.Errorf("first rectangle = %v, want (475,475)-(525,525)", r)
	}
}

func TestPutNextRectangleKeepsSize(t *testing.T) {
	for _, size := range []image.Point{image.Pt(10, 10), image.Pt(11, 11), image.Pt(3, 17)} {
		l := newTestLayouter(t)
		for i := 0; i < 5; i++ {
			r := put(t, l, size)
			if r.Size() != size {
				t.Errorf("rectangle %v has size %v, want %v", r, r.Size(), size)
			}
		}
	}
}

func TestPutNextRectangleRectanglesDoNotIntersect(t *testing.T) {
	for _, count := range []int{2, 10, 20, 50, 70} {
		l := newTestLayouter(t)
		var rects []image.Rectangle
		for _, size := range randomSizes(50, 50, count) {
			rects = append(rects, put(t, l, size))
		}

		assertNoOverlap(t, rects)
		assertInField(t, l, rects)
	}
}

func TestPutNextRectangleTenSquares(t *testing.T) {
	l := newTestLayouter(t)
	var rects []image.Rectangle
	for i := 0; i < 10; i++ {
		rects = append(rects, put(t, l, image.Pt(50, 50)))
	}

	assertNoOverlap(t, rects)
	assertInField(t, l, rects)
	if l.Len() != 10 {
		t.Errorf("Len() = %d, want 10", l.Len())
	}
}

func TestPutNextRectangleExhaustion(t *testing.T) {
	l, err := NewLayouter(image.Pt(5, 5))
	if err != nil {
		t.Fatalf("NewLayouter: %v", err)
	}

	first := put(t, l, image.Pt(10, 10))
	if first != image.Rect(0, 0, 10, 10) {
		t.Fatalf("first rectangle = %v, want the whole field", first)
	}

	_, err = l.PutNextRectangle(image.Pt(10, 10))
	if !errors.Is(err, errors.ErrCodePlacementExhausted) {
		t.Fatalf("second PutNextRectangle error = %v, want %s", err, errors.ErrCodePlacementExhausted)
	}
	if !l.Exhausted() {
		t.Error("Exhausted() = false after exhaustion")
	}

	// The cursor cannot rewind: even a tiny rectangle fails now.
	_, err = l.PutNextRectangle(image.Pt(1, 1))
	if !errors.Is(err, errors.ErrCodePlacementExhausted) {
		t.Errorf("PutNextRectangle after exhaustion error = %v, want %s", err, errors.ErrCodePlacementExhausted)
	}
	if got := l.Rectangles(); len(got) != 1 || got[0] != first {
		t.Errorf("Rectangles() = %v, want only %v", got, first)
	}
}

func TestPutNextRectangleExhaustsSmallCloud(t *testing.T) {
	l, err := NewLayouter(image.Pt(250, 250))
	if err != nil {
		t.Fatalf("NewLayouter: %v", err)
	}

	var rects []image.Rectangle
	for i := 0; i < 500; i++ {
		r, err := l.PutNextRectangle(image.Pt(50, 40))
		if errors.Is(err, errors.ErrCodePlacementExhausted) {
			break
		}
		if err != nil {
			t.Fatalf("PutNextRectangle: %v", err)
		}
		rects = append(rects, r)
	}

	if len(rects) < 50 || len(rects) >= 500 {
		t.Errorf("placed %d rectangles, want exhaustion after at least 50", len(rects))
	}
	assertNoOverlap(t, rects)
	assertInField(t, l, rects)
}

func TestPutNextRectangleIsDeterministic(t *testing.T) {
	sizes := randomSizes(40, 30, 40)

	run := func() []image.Rectangle {
		l := newTestLayouter(t)
		for _, size := range sizes {
			put(t, l, size)
		}
		return l.Rectangles()
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("rectangle %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestRectanglesReturnsCopy(t *testing.T) {
	l := newTestLayouter(t)
	first := put(t, l, image.Pt(20, 20))

	rects := l.Rectangles()
	rects[0] = image.Rect(0, 0, 1, 1)

	if got := l.Rectangles()[0]; got != first {
		t.Errorf("Rectangles() exposed internal state: got %v, want %v", got, first)
	}
}

func TestCenteredAt(t *testing.T) {
	tests := []struct {
		p, size image.Point
		want    image.Rectangle
	}{
		{image.Pt(10, 10), image.Pt(4, 4), image.Rect(8, 8, 12, 12)},
		{image.Pt(10, 10), image.Pt(5, 3), image.Rect(8, 9, 13, 12)},
		{image.Pt(0, 0), image.Pt(1, 1), image.Rect(0, 0, 1, 1)},
	}

	for _, tt := range tests {
		if got := centeredAt(tt.p, tt.size); got != tt.want {
			t.Errorf("centeredAt(%v, %v) = %v, want %v", tt.p, tt.size, got, tt.want)
		}
	}
}
