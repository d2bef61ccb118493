package prism

import (
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model2d"
)

var (
	// ErrTooFewPoints implies a path cannot form even a single wall segment.
	ErrTooFewPoints = fmt.Errorf("path requires at least two points")

	// ErrDuplicatePoint implies two consecutive path points coincide.
	ErrDuplicatePoint = fmt.Errorf("path contains consecutive duplicate points")

	// ErrSelfIntersecting implies the path crosses over itself.
	ErrSelfIntersecting = fmt.Errorf("path is self-intersecting")
)

// ValidatePath checks that a polyline is usable as the footprint of an
// extruded prism; at least two points, no zero-length segments and no
// segment crossing another.
func ValidatePath(pts []model2d.Coord) error {
	if len(pts) < 2 {
		return ErrTooFewPoints
	}

	for i := 1; i < len(pts); i++ {
		if pts[i] == pts[i-1] {
			return ErrDuplicatePoint
		}
	}

	// adjacent segments share a vertex; the only way they can overlap
	// is an exact 180 degree turn back along the previous segment
	for i := 2; i < len(pts); i++ {
		a := pts[i-1].Sub(pts[i-2])
		b := pts[i].Sub(pts[i-1])
		if a.X*b.Y-a.Y*b.X == 0 && a.Dot(b) < 0 {
			return ErrSelfIntersecting
		}
	}

	// each segment vs every non-adjacent segment
	for i := 1; i < len(pts); i++ {
		for j := i + 2; j < len(pts); j++ {
			if SegmentsIntersect(pts[i-1], pts[i], pts[j-1], pts[j]) {
				return ErrSelfIntersecting
			}
		}
	}

	return nil
}

// Segments pairs up consecutive path points.
func Segments(pts []model2d.Coord) []*model2d.Segment {
	segs := make([]*model2d.Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		segs = append(segs, &model2d.Segment{pts[i-1], pts[i]})
	}
	return segs
}

// Angle returns the yaw of the segment a->b about the vertical axis.
func Angle(a, b model2d.Coord) float64 {
	d := b.Sub(a)
	return math.Atan2(d.Y, d.X)
}

// DistToSegment returns the shortest distance from p to the segment a-b.
func DistToSegment(p, a, b model2d.Coord) float64 {
	ab := b.Sub(a)
	lsq := ab.Dot(ab)
	if lsq == 0 {
		return p.Dist(a)
	}

	t := p.Sub(a).Dot(ab) / lsq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return p.Dist(a.Add(ab.Scale(t)))
}

// SegmentsIntersect returns if segment a0-a1 properly crosses b0-b1.
// Segments that merely share an endpoint do not count.
func SegmentsIntersect(a0, a1, b0, b1 model2d.Coord) bool {
	if a0 == b0 || a0 == b1 || a1 == b0 || a1 == b1 {
		return false
	}

	d1 := cross(b0, b1, a0)
	d2 := cross(b0, b1, a1)
	d3 := cross(a0, a1, b0)
	d4 := cross(a0, a1, b1)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// collinear overlap
	if d1 == 0 && onSegment(b0, b1, a0) {
		return true
	}
	if d2 == 0 && onSegment(b0, b1, a1) {
		return true
	}
	if d3 == 0 && onSegment(a0, a1, b0) {
		return true
	}
	if d4 == 0 && onSegment(a0, a1, b1) {
		return true
	}
	return false
}

// cross is the z component of (b-a) x (p-a)
func cross(a, b, p model2d.Coord) float64 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// onSegment assumes p is collinear with a-b & returns if p sits between them.
func onSegment(a, b, p model2d.Coord) bool {
	return math.Min(a.X, b.X) <= p.X && p.X <= math.Max(a.X, b.X) &&
		math.Min(a.Y, b.Y) <= p.Y && p.Y <= math.Max(a.Y, b.Y)
}
