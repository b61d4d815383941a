package geom

// Segment is the closed line segment from A to B.
type Segment struct {
	A, B Point
}

func Seg(a, b Point) Segment {
	return Segment{A: a, B: b}
}

func (s Segment) Delta() Point {
	return s.B.Sub(s.A)
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool {
	return s.A == s.B
}

// At returns the point at parameter t along the segment.
func (s Segment) At(t float64) Point {
	return s.A.Add(s.Delta().Scale(t))
}

// Bounds returns the smallest rectangle containing the segment.
func (s Segment) Bounds() Rect {
	return RectFromPoints(s.A, s.B)
}

// Intersect returns the point where s and o cross, with t the parameter
// along s. Both parameters must fall in [0,1]. Parallel segments, colinear
// ones included, never intersect, and neither does a zero-length segment.
func (s Segment) Intersect(o Segment) (p Point, t float64, ok bool) {
	d1 := s.Delta()
	d2 := o.Delta()

	denom := d2.Y*d1.X - d2.X*d1.Y
	if denom == 0 {
		return Point{}, 0, false
	}

	ta := (d2.X*(s.A.Y-o.A.Y) - d2.Y*(s.A.X-o.A.X)) / denom
	tb := (d1.X*(s.A.Y-o.A.Y) - d1.Y*(s.A.X-o.A.X)) / denom
	if ta < 0 || ta > 1 || tb < 0 || tb > 1 {
		return Point{}, 0, false
	}

	return s.At(ta), ta, true
}
