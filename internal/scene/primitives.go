package scene

import (
	"math"

	"github.com/grayscene/gray/internal/vecmath"
)

// Sphere is a CSG sphere centered at Center with radius Radius.
type Sphere struct {
	BaseViewable
	Center vecmath.VectorR3
	Radius float64
}

func (s *Sphere) Extent() vecmath.AABB {
	r := vecmath.VectorR3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return vecmath.AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s *Sphere) ClippedExtent(box vecmath.AABB) vecmath.AABB {
	return clipAABB(s.Extent(), box)
}

func (s *Sphere) Intersect(origin, dir vecmath.VectorR3) (float64, bool, bool) {
	oc := origin.Sub(s.Center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false, false
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > 1e-9 {
		return t0, true, true // entering: front face
	}
	if t1 > 1e-9 {
		return t1, false, true // exiting: back face
	}
	return 0, false, false
}

// Box is an axis-aligned rectangular detector/phantom block (spec.md §6 "k <center
// size>" / "array").
type Box struct {
	BaseViewable
	Bound vecmath.AABB
}

func (b *Box) Extent() vecmath.AABB { return b.Bound }

func (b *Box) ClippedExtent(box vecmath.AABB) vecmath.AABB {
	return clipAABB(b.Bound, box)
}

func (b *Box) Intersect(origin, dir vecmath.VectorR3) (float64, bool, bool) {
	entry, exit, hit := b.Bound.Intersect(origin, dir.Inv(), 1e-9, math.Inf(1))
	if !hit {
		return 0, false, false
	}
	if entry > 1e-9 {
		return entry, true, true
	}
	if exit > 1e-9 {
		return exit, false, true
	}
	return 0, false, false
}

// Cylinder is a finite circular cylinder with axis along Z in its local frame,
// oriented/positioned by Center/Axis/Radius/HalfHeight.
type Cylinder struct {
	BaseViewable
	Center     vecmath.VectorR3
	Axis       vecmath.VectorR3 // unit
	Radius     float64
	HalfHeight float64
}

func (c *Cylinder) localFrame() (u, v vecmath.VectorR3) {
	axis := c.Axis.Normalize()
	if math.Abs(axis.X) < 0.9 {
		u = vecmath.VectorR3{X: 1}.Cross(axis).Normalize()
	} else {
		u = vecmath.VectorR3{Y: 1}.Cross(axis).Normalize()
	}
	v = axis.Cross(u)
	return u, v
}

func (c *Cylinder) Extent() vecmath.AABB {
	// Conservative AABB: enclose the two end-cap circles' bounding boxes.
	u, v := c.localFrame()
	axis := c.Axis.Normalize()
	top := c.Center.Add(axis.Scale(c.HalfHeight))
	bot := c.Center.Sub(axis.Scale(c.HalfHeight))
	extent := u.Scale(c.Radius).Add(v.Scale(c.Radius))
	rad := vecmath.VectorR3{X: math.Abs(extent.X) + c.Radius, Y: math.Abs(extent.Y) + c.Radius, Z: math.Abs(extent.Z) + c.Radius}
	box := vecmath.AABB{Min: top.Sub(rad), Max: top.Add(rad)}
	box = box.Enclose(vecmath.AABB{Min: bot.Sub(rad), Max: bot.Add(rad)})
	return box
}

func (c *Cylinder) ClippedExtent(box vecmath.AABB) vecmath.AABB {
	return clipAABB(c.Extent(), box)
}

func (c *Cylinder) Intersect(origin, dir vecmath.VectorR3) (float64, bool, bool) {
	axis := c.Axis.Normalize()
	oc := origin.Sub(c.Center)
	// Decompose into components parallel/perpendicular to axis.
	ocPar := axis.Scale(oc.Dot(axis))
	ocPerp := oc.Sub(ocPar)
	dPar := axis.Scale(dir.Dot(axis))
	dPerp := dir.Sub(dPar)

	a := dPerp.Dot(dPerp)
	b := 2 * ocPerp.Dot(dPerp)
	cc := ocPerp.Dot(ocPerp) - c.Radius*c.Radius

	best := math.Inf(1)
	front := false
	found := false

	if a > 1e-12 {
		disc := b*b - 4*a*cc
		if disc >= 0 {
			sq := math.Sqrt(disc)
			for _, t := range []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)} {
				if t <= 1e-9 {
					continue
				}
				h := oc.Dot(axis) + t*dir.Dot(axis)
				if math.Abs(h) <= c.HalfHeight && t < best {
					best = t
					front = t == (-b-sq)/(2*a)
					found = true
				}
			}
		}
	}
	// End caps.
	for _, sign := range []float64{1, -1} {
		capCenter := c.Center.Add(axis.Scale(sign * c.HalfHeight))
		denom := dir.Dot(axis) * sign
		if math.Abs(denom) < 1e-12 {
			continue
		}
		t := capCenter.Sub(origin).Dot(axis) * sign / denom
		if t <= 1e-9 || t >= best {
			continue
		}
		p := origin.Add(dir.Scale(t))
		if p.Sub(capCenter).NormSq() <= c.Radius*c.Radius {
			best = t
			front = denom < 0
			found = true
		}
	}
	if !found {
		return 0, false, false
	}
	return best, front, true
}

func clipAABB(e, box vecmath.AABB) vecmath.AABB {
	out := e
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
