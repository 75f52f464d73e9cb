// Package scene implements spec.md's Scene: the owner of materials and viewables (no
// lights or camera) that builds the k-d tree over viewable AABBs and answers
// nearest-intersection queries for the photon transport loop.
//
// Grounded on the teacher's voxelrt/rt/core.Scene (Objects slice, AddObject, an
// AABB-driven tree rebuild) generalized from voxel objects with a GPU BVH byte blob to
// CSG viewables with the CPU kdtree.Tree this spec's transport engine needs.
package scene

import (
	"github.com/grayscene/gray/internal/material"
	"github.com/grayscene/gray/internal/vecmath"
)

// Viewable is the minimal per-primitive surface spec.md §9 calls for: an AABB extent
// function pair for k-d tree construction, plus a ray intersection test that reports
// whether the hit face is the primitive's front face (outward normal faces the ray
// origin) or back face.
type Viewable interface {
	Extent() vecmath.AABB
	ClippedExtent(box vecmath.AABB) vecmath.AABB
	// Intersect returns the distance to the nearest intersection along dir from
	// origin, and whether that hit is a front-face crossing.
	Intersect(origin, dir vecmath.VectorR3) (dist float64, front bool, ok bool)
	Material() *material.GammaStats
	// DetID is the sensitive-detector id this viewable belongs to, or < 0 if it
	// is not a sensitive volume.
	DetID() int
}

// BaseViewable is embeddable scaffolding for concrete primitives: it stores the common
// material/det-id fields so Sphere, Box, Cylinder, etc. only implement Extent/Intersect.
type BaseViewable struct {
	Mat *material.GammaStats
	Det int
}

func (b BaseViewable) Material() *material.GammaStats { return b.Mat }
func (b BaseViewable) DetID() int                      { return b.Det }
