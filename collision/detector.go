// Package collision decides whether a token's move crosses the boundary of a
// trigger zone, and where the token should stop when it does.
package collision

import (
	"errors"
	"fmt"
	"math"

	"github.com/1000nettles/heywait/geom"
)

var ErrInvalidGeometry = errors.New("collision: invalid geometry")

// Zone is the rectangle a token must not cross unnoticed. Unlimited zones let
// a token that starts inside them leave without firing.
type Zone struct {
	Rect      geom.Rect
	Unlimited bool
}

// NewZone validates the rectangle once so later checks can trust it.
func NewZone(x, y, width, height float64, unlimited bool) (Zone, error) {
	z := Zone{Rect: geom.Rect{X: x, Y: y, Width: width, Height: height}, Unlimited: unlimited}
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return z, nil
}

func (z Zone) Validate() error {
	r := z.Rect
	if !r.Min().Finite() || !geom.Pt(r.Width, r.Height).Finite() {
		return fmt.Errorf("%w: zone %v has non-finite coordinates", ErrInvalidGeometry, r)
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: zone %v must have positive size", ErrInvalidGeometry, r)
	}
	return nil
}

// Footprint is a token's size in grid units together with the pixel size of
// one unit.
type Footprint struct {
	WidthUnits  float64
	HeightUnits float64
	GridSize    float64
}

func (f Footprint) Validate() error {
	if !geom.Pt(f.WidthUnits, f.HeightUnits).Finite() || math.IsNaN(f.GridSize) || math.IsInf(f.GridSize, 0) {
		return fmt.Errorf("%w: footprint %+v has non-finite values", ErrInvalidGeometry, f)
	}
	if f.WidthUnits <= 0 || f.HeightUnits <= 0 || f.GridSize <= 0 {
		return fmt.Errorf("%w: footprint %+v must have positive size", ErrInvalidGeometry, f)
	}
	return nil
}

// Size returns the footprint in pixels.
func (f Footprint) Size() geom.Point {
	return geom.Pt(f.WidthUnits*f.GridSize, f.HeightUnits*f.GridSize)
}

// Center converts a top-left anchor into the token's center.
func (f Footprint) Center(anchor geom.Point) geom.Point {
	return anchor.Add(f.Size().Scale(0.5))
}

// RoundedCenter is Center rounded to whole pixels, the position the camera
// pans to.
func (f Footprint) RoundedCenter(anchor geom.Point) geom.Point {
	return f.Center(anchor).Round()
}

// Result describes one zone check. Stop is only meaningful when HasStop is
// set; it is an anchor position, not a center.
type Result struct {
	Collided     bool
	Intersection geom.Point
	Stop         geom.Point
	HasStop      bool
}

// Detector runs zone checks against a scene grid. The zero value checks
// boundaries but never suggests a stop position.
type Detector struct {
	Grid geom.Grid
}

func NewDetector(gridSize float64) Detector {
	return Detector{Grid: geom.Grid{Size: gridSize}}
}

// Check reports whether moving a token with footprint fp from the start
// anchor to the end anchor crosses the boundary of z.
func (d Detector) Check(z Zone, fp Footprint, start, end geom.Point) Result {
	from := fp.Center(start)
	to := fp.Center(end)

	if z.Unlimited && z.Rect.Contains(from) {
		return Result{}
	}

	path := geom.Seg(from, to)

	var (
		nearest   geom.Point
		nearestSq = math.Inf(1)
		hit       bool
	)
	for _, edge := range z.Rect.Edges() {
		p, _, ok := path.Intersect(edge)
		if !ok {
			continue
		}
		hit = true
		if dsq := p.DistSq(from); dsq < nearestSq {
			nearest = p
			nearestSq = dsq
		}
	}
	if !hit {
		return Result{}
	}

	res := Result{Collided: true, Intersection: nearest}
	if d.Grid.Size > 0 {
		res.Stop = d.stopAt(z.Rect, from, nearest)
		res.HasStop = true
	}
	return res
}

// stopAt pulls the crossing point one cell back into the zone when the token
// approached from the right or from below, then drops it onto a grid vertex.
func (d Detector) stopAt(r geom.Rect, from, crossing geom.Point) geom.Point {
	stop := crossing
	if from.X > r.Right() {
		stop.X -= d.Grid.Size
	}
	if from.Y > r.Bottom() {
		stop.Y -= d.Grid.Size
	}
	return d.Grid.Vertex(stop)
}

// Collides is Check without the stop suggestion.
func Collides(z Zone, fp Footprint, start, end geom.Point) bool {
	return Detector{}.Check(z, fp, start, end).Collided
}
