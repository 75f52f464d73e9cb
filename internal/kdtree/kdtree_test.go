package kdtree

import (
	"math/rand"
	"testing"

	"github.com/grayscene/gray/internal/vecmath"
)

// boxSet is a tiny fixture implementing ExtentFunc/ClippedExtentFunc over a fixed
// slice of AABBs, standing in for the Scene's viewable collection.
type boxSet struct {
	boxes []vecmath.AABB
}

func (s *boxSet) extent(i int) vecmath.AABB { return s.boxes[i] }

func (s *boxSet) clippedExtent(i int, box vecmath.AABB) vecmath.AABB {
	e := s.boxes[i]
	out := vecmath.AABB{Min: e.Min, Max: e.Max}
	for axis := 0; axis < 3; axis++ {
		if box.Min.Component(axis) > out.Min.Component(axis) {
			out.Min = out.Min.WithComponent(axis, box.Min.Component(axis))
		}
		if box.Max.Component(axis) < out.Max.Component(axis) {
			out.Max = out.Max.WithComponent(axis, box.Max.Component(axis))
		}
	}
	return out
}

func TestKdTreeRoundTripRandomBoxes(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	n := 40
	s := &boxSet{}
	for i := 0; i < n; i++ {
		cx := r.Float64()*100 - 50
		cy := r.Float64()*100 - 50
		cz := r.Float64()*100 - 50
		half := 0.4
		s.boxes = append(s.boxes, vecmath.AABB{
			Min: vecmath.VectorR3{X: cx - half, Y: cy - half, Z: cz - half},
			Max: vecmath.VectorR3{X: cx + half, Y: cy + half, Z: cz + half},
		})
	}

	tree, err := Build(n, s.extent, s.clippedExtent, BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	hitTest := func(objID int, origin, dir vecmath.VectorR3, currentBest float64) (float64, bool) {
		box := s.boxes[objID]
		entry, _, ok := box.Intersect(origin, dir.Inv(), 1e-9, currentBest)
		if !ok || entry >= currentBest {
			return currentBest, false
		}
		return entry, true
	}

	dirs := []vecmath.VectorR3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}

	for i, box := range s.boxes {
		centroid := box.Centroid()
		for _, d := range dirs {
			origin := centroid.Sub(d.Scale(1000))
			got, _, hit := tree.Traverse(origin, d, 2000, hitTest)
			if !hit {
				t.Fatalf("box %d: expected hit along %+v, got none", i, d)
			}
			if got != i {
				t.Errorf("box %d: expected first hit to be box %d, got %d", i, i, got)
			}
		}
	}
}

func TestKdTreeEmpty(t *testing.T) {
	tree, err := Build(0, nil, nil, BuildOptions{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, _, hit := tree.Traverse(vecmath.VectorR3{}, vecmath.VectorR3{Z: 1}, 100, func(int, vecmath.VectorR3, vecmath.VectorR3, float64) (float64, bool) {
		t.Fatal("callback should not be invoked on empty tree")
		return 0, false
	})
	if hit {
		t.Errorf("expected no hit on empty tree")
	}
}
