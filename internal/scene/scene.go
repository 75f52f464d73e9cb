package scene

import (
	"math"

	"github.com/grayscene/gray/internal/kdtree"
	"github.com/grayscene/gray/internal/logging"
	"github.com/grayscene/gray/internal/material"
	"github.com/grayscene/gray/internal/vecmath"
)

// VisiblePoint is the hit record SeekIntersection produces: the struck Viewable and
// whether the hit face is a front or back face, per spec.md §4.2 step 6.
type VisiblePoint struct {
	Object Viewable
	Front  bool
	Pos    vecmath.VectorR3
}

// Scene owns materials (by name) and viewables, and builds the k-d tree over the
// viewables' AABBs, per spec.md §4.2. It holds no lights and no camera.
type Scene struct {
	Materials map[string]*material.GammaStats
	Viewables []Viewable

	tree *kdtree.Tree
	log  logging.Logger
}

func New(log logging.Logger) *Scene {
	if log == nil {
		log = logging.Nop{}
	}
	return &Scene{Materials: map[string]*material.GammaStats{}, log: log}
}

func (s *Scene) AddMaterial(m *material.GammaStats) { s.Materials[m.Name] = m }

func (s *Scene) AddViewable(v Viewable) { s.Viewables = append(s.Viewables, v) }

// Build constructs the acceleration structure from the current viewable set, per
// spec.md §4.1/§4.2. Must be called once before SeekIntersection.
func (s *Scene) Build(opts kdtree.BuildOptions) error {
	extent := func(i int) vecmath.AABB { return s.Viewables[i].Extent() }
	clipped := func(i int, box vecmath.AABB) vecmath.AABB { return s.Viewables[i].ClippedExtent(box) }
	tree, err := kdtree.Build(len(s.Viewables), extent, clipped, opts)
	if err != nil {
		s.log.Errorf("kdtree build failed: %v", err)
		return err
	}
	s.tree = tree
	s.log.Infof("built k-d tree over %d viewables", len(s.Viewables))
	return nil
}

// SeekIntersection finds the closest front-or-back intersection along the ray from
// pos in direction dir, per spec.md §4.2 "Scene responsibility".
func (s *Scene) SeekIntersection(pos, dir vecmath.VectorR3) (hitDist float64, vp VisiblePoint, ok bool) {
	if s.tree == nil {
		return 0, VisiblePoint{}, false
	}
	cb := func(objID int, origin, d vecmath.VectorR3, currentBest float64) (float64, bool) {
		v := s.Viewables[objID]
		dist, _, hit := v.Intersect(origin, d)
		if !hit || dist >= currentBest || math.IsNaN(dist) {
			return currentBest, false
		}
		return dist, true
	}
	objID, dist, hit := s.tree.Traverse(pos, dir, math.Inf(1), cb)
	if !hit {
		return 0, VisiblePoint{}, false
	}
	v := s.Viewables[objID]
	_, front, _ := v.Intersect(pos, dir)
	return dist, VisiblePoint{Object: v, Front: front, Pos: pos.Add(dir.Scale(dist))}, true
}

// TestOverlap ray-casts in an arbitrary fixed direction from pos and reports whether
// the ordered boundary crossings fail to reduce to a consistent nested stack (used by
// the CLI's --run_overlap_test, spec.md §6, and internally to validate source-material
// stack construction, spec.md §4.2 "Source-material stack").
func (s *Scene) TestOverlap(pos vecmath.VectorR3) bool {
	_, err := s.MaterialStackAt(pos)
	return err != nil
}

// arbitraryProbeDirection is the fixed ray direction used to build the ordered list of
// material boundaries outward from a source centroid, per spec.md §4.2.
var arbitraryProbeDirection = vecmath.VectorR3{X: 0.5773502691896258, Y: 0.5773502691896258, Z: 0.5773502691896258}

// MaterialStackAt ray-casts outward from pos and reduces the ordered boundary
// crossings to the stack of materials enclosing pos, per spec.md §4.2
// "Source-material stack": front-face crossings push, matching back-face crossings
// pop, and a back-face crossing that does not match the most recent unmatched
// front-face crossing indicates geometry overlap. A back-face crossing with no
// unmatched front-face crossing before it belongs to a volume that contains pos; those
// volumes end up on the returned stack above the default material, outermost first.
func (s *Scene) MaterialStackAt(pos vecmath.VectorR3) ([]*material.GammaStats, error) {
	defaultMat := s.Materials["default"]
	stack := []*material.GammaStats{defaultMat}
	var enclosing []*material.GammaStats
	cur := pos
	dir := arbitraryProbeDirection
	const epsilon = 1e-10
	for i := 0; i < 10000; i++ {
		dist, vp, hit := s.SeekIntersection(cur, dir)
		if !hit {
			break
		}
		if vp.Front {
			stack = append(stack, vp.Object.Material())
		} else if len(stack) > 1 {
			if stack[len(stack)-1] != vp.Object.Material() {
				return stack, errOverlap
			}
			stack = stack[:len(stack)-1]
		} else {
			enclosing = append(enclosing, vp.Object.Material())
		}
		cur = cur.Add(dir.Scale(dist + epsilon))
	}
	stack = []*material.GammaStats{defaultMat}
	for i := len(enclosing) - 1; i >= 0; i-- {
		stack = append(stack, enclosing[i])
	}
	return stack, nil
}

var errOverlap = overlapError{}

type overlapError struct{}

func (overlapError) Error() string { return "scene: geometry overlap detected" }
