// Package kdtree implements the SAH-built, stackless-traversal k-d tree spec.md §4.1
// describes: an acceleration structure over per-object AABBs that hands intersected
// objects to a caller-supplied callback in near-to-far order.
//
// Nodes are a tagged union (leaf: object index list; internal: split axis/value plus
// child indices) stored contiguously in one growable slice, grounded on the teacher's
// voxelrt/rt/bvh.TLASBuilder node layout (itself a [Min,Max]+Left/Right/LeafFirst/
// LeafCount struct) but generalized from a fixed median split to the SAH cost search
// and from a recursive-callback GPU traversal to the CPU stackless array traversal
// this spec requires.
package kdtree

import "github.com/grayscene/gray/internal/vecmath"

const (
	// MaxDepth bounds the explicit traversal stack at 63 entries, per spec.md §4.1
	// ("stackless except for a fixed-depth array (depth <= ~63)").
	MaxDepth = 63

	// ExtentTripleStorageMultiplier documents the teacher C++'s preallocated
	// scratch-space sizing convention (spec.md §4.1 step 3). Go slices grow
	// dynamically, so this is not an enforced capacity here, and Build does not
	// read it; Build's only resource check (spec.md §7 "Resource errors") is
	// BuildOptions.MaxObjectsInput.
	ExtentTripleStorageMultiplier = 4

	defaultLeafSize = 2
)

type node struct {
	isLeaf  bool
	objects []int32 // leaf only

	axis     int8    // internal only: 0=X,1=Y,2=Z
	splitVal float64 // internal only
	left     int32   // internal only; -1 if empty
	right    int32   // internal only; -1 if empty
	bound    vecmath.AABB
}

// Tree is an immutable, built-once acceleration structure.
type Tree struct {
	nodes []node
	root  int32
}

// ExtentFunc returns the untrimmed AABB of object i.
type ExtentFunc func(i int) vecmath.AABB

// ClippedExtentFunc returns object i's AABB clipped against box, used when recomputing
// a child node's bound after a straddling object has been assigned to it.
type ClippedExtentFunc func(i int, box vecmath.AABB) vecmath.AABB

// Callback is invoked once per object in every visited leaf, in near-to-far leaf order.
// It returns the (possibly updated) best hit distance and whether it improved on the
// caller's current best; traversal uses the returned distance to prune subsequent
// cells once it is shorter than the next cell's entry distance.
type Callback func(objID int, origin, dir vecmath.VectorR3, currentBest float64) (newBest float64, improved bool)
