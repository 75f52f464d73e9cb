package vecmath

import "math"

// AABB is an axis-aligned bounding box. Min/Max are component-wise bounds; a box
// with Min.X > Max.X on any axis is treated as empty by SurfaceArea; Enclose makes no
// emptiness check, and only EmptyAABB's infinite bounds leave the other box unchanged.
type AABB struct {
	Min, Max VectorR3
}

// EmptyAABB returns a box that Enclose()-ing anything will replace entirely.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: VectorR3{inf, inf, inf},
		Max: VectorR3{-inf, -inf, -inf},
	}
}

func (b AABB) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Enclose grows the box to contain o.
func (b AABB) Enclose(o AABB) AABB {
	return AABB{
		Min: VectorR3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: VectorR3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

func (b AABB) EnclosePoint(p VectorR3) AABB {
	return AABB{
		Min: VectorR3{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: VectorR3{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

func (b AABB) SurfaceArea() float64 {
	if b.Empty() {
		return 0
	}
	d := b.Max.Sub(b.Min)
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

func (b AABB) Centroid() VectorR3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Clip returns b restricted to [lo, hi] along axis, used by the k-d tree builder to
// recompute a child's AABB from its parent when a straddling object is split.
func (b AABB) Clip(axis int, lo, hi float64) AABB {
	out := b
	if lo > out.Min.Component(axis) {
		out.Min = out.Min.WithComponent(axis, lo)
	}
	if hi < out.Max.Component(axis) {
		out.Max = out.Max.WithComponent(axis, hi)
	}
	return out
}

// Intersect performs the classic slab test. dirInv is the component-wise reciprocal
// of dir (VectorR3.Inv()); on an axis where it is negative the two slab distances are
// swapped. The returned [entry, exit] interval is clipped to [tmin, tmax].
func (b AABB) Intersect(origin, dirInv VectorR3, tmin, tmax float64) (entry, exit float64, hit bool) {
	for axis := 0; axis < 3; axis++ {
		o := origin.Component(axis)
		inv := dirInv.Component(axis)
		lo := (b.Min.Component(axis) - o) * inv
		hi := (b.Max.Component(axis) - o) * inv
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo > tmin {
			tmin = lo
		}
		if hi < tmax {
			tmax = hi
		}
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, true
}

// Corners returns the eight corners of the box, used for conservative AABB transforms
// under a RigidMap.
func (b AABB) Corners() [8]VectorR3 {
	return [8]VectorR3{
		{b.Min.X, b.Min.Y, b.Min.Z}, {b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z}, {b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z}, {b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z}, {b.Max.X, b.Max.Y, b.Max.Z},
	}
}
