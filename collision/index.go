package collision

import (
	"sort"

	"github.com/jakecoffman/cp"

	"github.com/1000nettles/heywait/geom"
)

// Index narrows the zones worth checking for a move. Zones are kept as static
// boxes in a chipmunk space, and a move only considers zones whose box
// touches the bounding box of its path. The answer is a superset of the zones
// Check would report.
type Index struct {
	space  *cp.Space
	shapes map[string]*cp.Shape
	rects  map[string]geom.Rect
}

func NewIndex() *Index {
	return &Index{
		space:  cp.NewSpace(),
		shapes: map[string]*cp.Shape{},
		rects:  map[string]geom.Rect{},
	}
}

// Upsert adds the zone or moves it when its rectangle changed.
func (ix *Index) Upsert(id string, r geom.Rect) {
	if ix == nil || id == "" {
		return
	}
	if old, ok := ix.rects[id]; ok {
		if old == r {
			return
		}
		ix.Remove(id)
	}

	shape := cp.NewBox2(ix.space.StaticBody, rectBB(r), 0)
	shape.SetSensor(true)
	shape.UserData = id
	ix.space.AddShape(shape)

	ix.shapes[id] = shape
	ix.rects[id] = r
}

func (ix *Index) Remove(id string) {
	if ix == nil {
		return
	}
	shape, ok := ix.shapes[id]
	if !ok {
		return
	}
	ix.space.RemoveShape(shape)
	delete(ix.shapes, id)
	delete(ix.rects, id)
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.shapes)
}

// IDs returns every indexed zone id in sorted order.
func (ix *Index) IDs() []string {
	if ix == nil {
		return nil
	}
	ids := make([]string, 0, len(ix.shapes))
	for id := range ix.shapes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Candidates returns the sorted ids of zones whose rectangle touches the
// bounding box of path.
func (ix *Index) Candidates(path geom.Segment) []string {
	if ix == nil || len(ix.shapes) == 0 {
		return nil
	}

	var ids []string
	ix.space.BBQuery(rectBB(path.Bounds()), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if id, ok := shape.UserData.(string); ok {
			ids = append(ids, id)
		}
	}, nil)

	sort.Strings(ids)
	return ids
}

// rectBB maps a top-left rectangle onto chipmunk's box. The space never
// simulates, so the y axis direction does not matter as long as it is used
// consistently.
func rectBB(r geom.Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.Right(), T: r.Bottom()}
}
