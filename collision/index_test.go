package collision

import (
	"reflect"
	"testing"

	"github.com/1000nettles/heywait/geom"
)

func TestIndexCandidates(t *testing.T) {
	ix := NewIndex()
	ix.Upsert("a", geom.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	ix.Upsert("b", geom.Rect{X: 100, Y: 0, Width: 10, Height: 10})
	ix.Upsert("c", geom.Rect{X: 0, Y: 100, Width: 10, Height: 10})

	cases := []struct {
		name string
		path geom.Segment
		want []string
	}{
		{"horizontal_across_a_and_b", geom.Seg(geom.Pt(-5, 5), geom.Pt(105, 5)), []string{"a", "b"}},
		{"vertical_through_a_and_c", geom.Seg(geom.Pt(5, -5), geom.Pt(5, 105)), []string{"a", "c"}},
		{"touching_corner", geom.Seg(geom.Pt(10, 10), geom.Pt(50, 50)), []string{"a"}},
		{"empty_space", geom.Seg(geom.Pt(40, 40), geom.Pt(60, 60)), nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ix.Candidates(c.path)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestIndexUpsertMovesAndRemove(t *testing.T) {
	ix := NewIndex()
	ix.Upsert("a", geom.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	ix.Upsert("a", geom.Rect{X: 500, Y: 500, Width: 10, Height: 10})

	if ix.Len() != 1 {
		t.Fatalf("expected one zone, got %d", ix.Len())
	}
	if got := ix.Candidates(geom.Seg(geom.Pt(-5, 5), geom.Pt(15, 5))); len(got) != 0 {
		t.Fatalf("moved zone still found at old spot: %v", got)
	}
	if got := ix.Candidates(geom.Seg(geom.Pt(495, 505), geom.Pt(515, 505))); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("moved zone not found at new spot: %v", got)
	}

	ix.Remove("a")
	ix.Remove("missing")
	if ix.Len() != 0 || len(ix.IDs()) != 0 {
		t.Fatalf("expected empty index after remove")
	}
}
