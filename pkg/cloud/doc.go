// Package cloud places rectangles around a fixed center point so that none
// of them overlap, producing the compact, roughly circular arrangement of a
// tag cloud.
//
// # Overview
//
// A [Layouter] owns two pieces of state: an append-only list of placed
// rectangles and a cursor into an outward [Spiral] of candidate center
// points. Every call to [Layouter.PutNextRectangle] resumes the spiral
// where the previous call stopped, so points already proven unusable are
// never examined again.
//
// # Field
//
// The field is the region [0, 2·Center.X] × [0, 2·Center.Y]. It is derived
// from the center on every use and never stored separately. Every committed
// rectangle lies fully inside it.
//
// # Spiral
//
// The spiral walks an Archimedean curve: the angle θ grows by a fixed step
// (default 0.2 rad) and the radius is coefficient·θ (default coefficient
// 0.5). Coordinates are truncated toward zero. The walk ends as soon as a
// point falls outside the field. Once the radius passes the field diagonal
// every point is outside, so [NewSpiral] rejects parameters that would need
// more than [MaxSamples] angles to get there, and the walk also ends if
// adding the step no longer changes the angle. Consecutive duplicate points
// produced by truncation are skipped.
//
// # Placement
//
// A candidate rectangle is centered on the spiral point, with its top-left
// corner at (p.X − w/2, p.Y − h/2). The first candidate that lies inside the
// field and overlaps none of the placed rectangles wins. Rectangles that
// only share an edge do not overlap.
//
//	l, err := cloud.NewLayouter(image.Pt(500, 500))
//	if err != nil {
//	    return err
//	}
//	rect, err := l.PutNextRectangle(image.Pt(50, 40))
//
// # Errors
//
// Invalid centers and sizes fail with [errors.ErrCodeInvalidArgument] and
// never advance the spiral. When the spiral ends before a fitting position
// is found, the call fails with [errors.ErrCodePlacementExhausted]; since
// the cursor cannot be rewound, every later call on the same layouter fails
// the same way.
//
// # Concurrency
//
// A Layouter is not safe for concurrent use. Distinct layouters share no
// state.
//
// [errors.ErrCodeInvalidArgument]: github.com/matzehuels/tagscloud/pkg/errors
// [errors.ErrCodePlacementExhausted]: github.com/matzehuels/tagscloud/pkg/errors
package cloud
