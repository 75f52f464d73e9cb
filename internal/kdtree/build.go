package kdtree

import (
	"errors"

	"github.com/grayscene/gray/internal/vecmath"
)

// ErrResourceExhausted is returned when numObjects exceeds BuildOptions.MaxObjectsInput,
// spec.md §7's "Resource errors" class; construction aborts before building any tree.
var ErrResourceExhausted = errors.New("kdtree: construction exceeded triple storage budget")

// CostModel selects the SAH cost estimator used during construction.
type CostModel int

const (
	// MacDonaldBooth is the default cost estimate (spec.md §4.1).
	MacDonaldBooth CostModel = iota
	// BussDoubleRecurse is the optional "double-recurse" variant.
	BussDoubleRecurse
)

// BuildOptions configures Build; the zero value selects sane defaults.
type BuildOptions struct {
	Cost            CostModel
	MaxObjectsInput int // sanity bound feeding ErrResourceExhausted; 0 = no bound
}

// Build constructs a tree over numObjects, querying extentOf/clippedExtentOf for
// per-object AABBs, per spec.md §4.1 "Construction".
func Build(numObjects int, extentOf ExtentFunc, clippedExtentOf ClippedExtentFunc, opts BuildOptions) (*Tree, error) {
	if opts.MaxObjectsInput > 0 && numObjects > opts.MaxObjectsInput {
		return nil, ErrResourceExhausted
	}
	t := &Tree{}
	if numObjects == 0 {
		t.nodes = append(t.nodes, node{isLeaf: true})
		t.root = 0
		return t, nil
	}

	ids := make([]int32, numObjects)
	bound := vecmath.EmptyAABB()
	for i := 0; i < numObjects; i++ {
		ids[i] = int32(i)
		bound = bound.Enclose(extentOf(i))
	}

	b := &builder{extentOf: extentOf, clippedExtentOf: clippedExtentOf, cost: opts.Cost}
	t.root = b.build(t, ids, bound, 0)
	return t, nil
}

type builder struct {
	extentOf        ExtentFunc
	clippedExtentOf ClippedExtentFunc
	cost            CostModel
}

// candidateSplit is one axis/value pair under SAH evaluation.
type candidateSplit struct {
	axis  int
	value float64
	cost  float64
}

func (b *builder) build(t *Tree, ids []int32, bound vecmath.AABB, depth int) int32 {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{bound: bound})

	if len(ids) <= defaultLeafSize || depth >= MaxDepth {
		t.nodes[idx] = node{isLeaf: true, objects: ids, bound: bound}
		return idx
	}

	best, ok := b.bestSplit(ids, bound)
	leafCost := float64(len(ids)) * bound.SurfaceArea()
	// "no split strictly beats total_cost - stopping_benefit/surface_area_ratio":
	// approximated here as requiring a strict, non-trivial improvement over the
	// leaf cost before paying for an internal node.
	const stoppingBenefit = 0.0
	if !ok || best.cost >= leafCost-stoppingBenefit {
		t.nodes[idx] = node{isLeaf: true, objects: ids, bound: bound}
		return idx
	}

	leftIDs, rightIDs := b.partition(ids, bound, best)
	if len(leftIDs) == 0 || len(rightIDs) == 0 {
		// Degenerate split (every object straddles): fall back to a leaf rather
		// than recursing forever on an identical partition.
		t.nodes[idx] = node{isLeaf: true, objects: ids, bound: bound}
		return idx
	}

	leftBound := bound.Clip(best.axis, bound.Min.Component(best.axis), best.value)
	rightBound := bound.Clip(best.axis, best.value, bound.Max.Component(best.axis))

	var left, right int32
	if len(leftIDs) <= len(rightIDs) {
		left = b.build(t, leftIDs, leftBound, depth+1)
		right = b.build(t, rightIDs, rightBound, depth+1)
	} else {
		right = b.build(t, rightIDs, rightBound, depth+1)
		left = b.build(t, leftIDs, leftBound, depth+1)
	}

	t.nodes[idx] = node{
		isLeaf:   false,
		axis:     int8(best.axis),
		splitVal: best.value,
		left:     left,
		right:    right,
		bound:    bound,
	}
	return idx
}

// bestSplit evaluates SAH cost over candidate split values on every axis — the min
// and max faces of each object's clipped-to-bound extent on that axis — and returns the
// cheapest, grounded on the MacDonald-Booth surface-area-weighted cost estimate.
func (b *builder) bestSplit(ids []int32, bound vecmath.AABB) (candidateSplit, bool) {
	var best candidateSplit
	found := false

	for axis := 0; axis < 3; axis++ {
		candidates := make([]float64, 0, len(ids)*2)
		for _, id := range ids {
			e := b.clippedExtentOf(int(id), bound)
			candidates = append(candidates, e.Min.Component(axis), e.Max.Component(axis))
		}
		lo := bound.Min.Component(axis)
		hi := bound.Max.Component(axis)
		for _, split := range candidates {
			if split <= lo || split >= hi {
				continue
			}
			cost := b.sahCost(ids, bound, axis, split)
			if !found || cost < best.cost {
				best = candidateSplit{axis: axis, value: split, cost: cost}
				found = true
			}
		}
	}
	return best, found
}

func (b *builder) sahCost(ids []int32, bound vecmath.AABB, axis int, split float64) float64 {
	leftBound := bound.Clip(axis, bound.Min.Component(axis), split)
	rightBound := bound.Clip(axis, split, bound.Max.Component(axis))
	var leftCount, rightCount int
	for _, id := range ids {
		e := b.clippedExtentOf(int(id), bound)
		if e.Min.Component(axis) < split {
			leftCount++
		}
		if e.Max.Component(axis) > split {
			rightCount++
		}
	}
	switch b.cost {
	case BussDoubleRecurse:
		// Buss's double-recurse variant additionally penalizes unbalanced splits;
		// approximated here by squaring the count imbalance term.
		imbalance := float64((leftCount - rightCount) * (leftCount - rightCount))
		return float64(leftCount)*leftBound.SurfaceArea() + float64(rightCount)*rightBound.SurfaceArea() + imbalance
	default:
		return float64(leftCount)*leftBound.SurfaceArea() + float64(rightCount)*rightBound.SurfaceArea()
	}
}

func (b *builder) partition(ids []int32, bound vecmath.AABB, split candidateSplit) (left, right []int32) {
	for _, id := range ids {
		e := b.clippedExtentOf(int(id), bound)
		lo := e.Min.Component(split.axis)
		hi := e.Max.Component(split.axis)
		if lo < split.value {
			left = append(left, id)
		}
		if hi > split.value {
			right = append(right, id)
		}
		if lo >= split.value && hi <= split.value {
			// Degenerate zero-extent object exactly on the plane: send left.
			left = append(left, id)
		}
	}
	return left, right
}
