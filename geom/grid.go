package geom

import "math"

// Grid is a square grid with cells of Size pixels whose lines pass through
// the origin.
type Grid struct {
	Size float64
}

// Snap moves p to the top-left vertex of the cell containing it, which is
// where a one-cell token standing on that cell is anchored. A grid without a
// positive size leaves p untouched.
func (g Grid) Snap(p Point) Point {
	if g.Size <= 0 {
		return p
	}
	return Point{
		X: math.Floor(p.X/g.Size) * g.Size,
		Y: math.Floor(p.Y/g.Size) * g.Size,
	}
}

// Vertex drops the remainder of each coordinate against the grid size. It
// agrees with Snap for non-negative points; negative coordinates move toward
// zero, so (-15, 5) on a 10px grid becomes (-10, 0).
func (g Grid) Vertex(p Point) Point {
	if g.Size <= 0 {
		return p
	}
	return Point{
		X: p.X - math.Mod(p.X, g.Size),
		Y: p.Y - math.Mod(p.Y, g.Size),
	}
}

// Cell returns the column and row containing p.
func (g Grid) Cell(p Point) (col, row int) {
	if g.Size <= 0 {
		return 0, 0
	}
	return int(math.Floor(p.X / g.Size)), int(math.Floor(p.Y / g.Size))
}
