// Package vecmath provides the 3-vector, rigid-map and axis-aligned bounding box
// primitives shared by the scene, k-d tree and photon transport packages. Physical
// quantities in this simulator are centimeters, seconds and MeV, so everything here is
// built on mgl64 rather than the 32-bit mathgl package a real-time renderer would use.
package vecmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// VectorR3 is an ordinary 3-vector.
type VectorR3 struct {
	X, Y, Z float64
}

func New(x, y, z float64) VectorR3 { return VectorR3{x, y, z} }

func (v VectorR3) vec() mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

func fromVec(m mgl64.Vec3) VectorR3 { return VectorR3{m[0], m[1], m[2]} }

func (v VectorR3) Add(o VectorR3) VectorR3 { return fromVec(v.vec().Add(o.vec())) }
func (v VectorR3) Sub(o VectorR3) VectorR3 { return fromVec(v.vec().Sub(o.vec())) }
func (v VectorR3) Scale(s float64) VectorR3 { return fromVec(v.vec().Mul(s)) }
func (v VectorR3) Dot(o VectorR3) float64  { return v.vec().Dot(o.vec()) }
func (v VectorR3) Cross(o VectorR3) VectorR3 { return fromVec(v.vec().Cross(o.vec())) }
func (v VectorR3) Norm() float64           { return v.vec().Len() }
func (v VectorR3) NormSq() float64         { return v.vec().LenSqr() }

func (v VectorR3) Normalize() VectorR3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

func (v VectorR3) DistanceTo(o VectorR3) float64 { return v.Sub(o).Norm() }

// Inv returns the component-wise reciprocal, used for the ray-slab test's
// precomputed 1/dir.
func (v VectorR3) Inv() VectorR3 {
	return VectorR3{safeInv(v.X), safeInv(v.Y), safeInv(v.Z)}
}

func safeInv(x float64) float64 {
	if x == 0 {
		return math.Inf(1)
	}
	return 1 / x
}

// Component returns the value along the given axis (0=X,1=Y,2=Z).
func (v VectorR3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func (v VectorR3) WithComponent(axis int, value float64) VectorR3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
