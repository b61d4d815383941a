package geom

import "fmt"

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

func (r Rect) Right() float64 {
	return r.X + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r or on its boundary.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// Intersects reports whether r and o share any point, edges included.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.Right() &&
		o.X <= r.Right() &&
		r.Y <= o.Bottom() &&
		o.Y <= r.Bottom()
}

// Edges returns the boundary in top, right, bottom, left order, walking the
// rectangle clockwise from the top-left corner.
func (r Rect) Edges() [4]Segment {
	x1, y1 := r.X, r.Y
	x2, y2 := r.Right(), r.Bottom()
	return [4]Segment{
		{A: Point{X: x1, Y: y1}, B: Point{X: x2, Y: y1}},
		{A: Point{X: x2, Y: y1}, B: Point{X: x2, Y: y2}},
		{A: Point{X: x2, Y: y2}, B: Point{X: x1, Y: y2}},
		{A: Point{X: x1, Y: y2}, B: Point{X: x1, Y: y1}},
	}
}

// Normalized returns r with non-negative width and height, moving the origin
// when a size was negative. Useful for rectangles drawn by dragging.
func (r Rect) Normalized() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// RectFromPoints builds the rectangle spanned by two opposite corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}.Normalized()
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}
