package vecmath

import "github.com/go-gl/mathgl/mgl64"

// RigidMap is a rotation composed with a translation, the transform the
// (out-of-scope) scene/source loader's push/pop/raxis matrix stack accumulates and
// applies to geometry and source centroids at load time.
type RigidMap struct {
	rot mgl64.Mat4
	pos VectorR3
}

func Identity() RigidMap {
	return RigidMap{rot: mgl64.Ident4()}
}

func (m RigidMap) Translate(d VectorR3) RigidMap {
	m.pos = m.pos.Add(m.ApplyDir(d))
	return m
}

// RotateAxis composes a rotation of deg degrees around the given unit axis, applied
// before existing rotations (matching the "push" stack order: later raxis calls rotate
// in the object's current local frame).
func (m RigidMap) RotateAxis(axis VectorR3, deg float64) RigidMap {
	rad := deg * (3.141592653589793 / 180)
	q := mgl64.QuatRotate(rad, mgl64.Vec3{axis.X, axis.Y, axis.Z})
	m.rot = m.rot.Mul4(q.Mat4())
	return m
}

func (m RigidMap) Apply(p VectorR3) VectorR3 {
	return m.ApplyDir(p).Add(m.pos)
}

// ApplyDir rotates (but does not translate) a direction/normal vector.
func (m RigidMap) ApplyDir(d VectorR3) VectorR3 {
	v4 := m.rot.Mul4x1(mgl64.Vec4{d.X, d.Y, d.Z, 0})
	return VectorR3{v4[0], v4[1], v4[2]}
}

// TransformAABB conservatively transforms a box by mapping all eight corners and
// re-enclosing, the same scheme the teacher's Scene.UpdateWorldAABB uses for
// non-axis-aligned transforms.
func (m RigidMap) TransformAABB(b AABB) AABB {
	out := EmptyAABB()
	for _, c := range b.Corners() {
		out = out.EnclosePoint(m.Apply(c))
	}
	return out
}
