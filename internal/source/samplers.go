package source

import (
	"math"

	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/vecmath"
	"gonum.org/v1/gonum/interp"
)

// Sampler is the geometric position distribution of spec.md §4.3 "Geometric samplers".
// All coordinates are already world-space (the loader bakes in the matrix stack at
// load time, per spec.md §4.3); SamplePoint and Inside must agree.
type Sampler interface {
	SamplePoint(r *rng.Generator) vecmath.VectorR3
	Inside(pos vecmath.VectorR3) bool
}

// PointSampler always returns the same position.
type PointSampler struct{ Pos vecmath.VectorR3 }

func (s PointSampler) SamplePoint(*rng.Generator) vecmath.VectorR3 { return s.Pos }
func (s PointSampler) Inside(pos vecmath.VectorR3) bool            { return pos == s.Pos }

// SphereSampler samples uniformly inside a ball of radius Radius centered at Center via
// rejection in the circumscribing cube, per spec.md §4.3 "Sphere".
type SphereSampler struct {
	Center vecmath.VectorR3
	Radius float64
}

func (s SphereSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	for {
		x := (2*r.Uniform01() - 1) * s.Radius
		y := (2*r.Uniform01() - 1) * s.Radius
		z := (2*r.Uniform01() - 1) * s.Radius
		if x*x+y*y+z*z <= s.Radius*s.Radius {
			return s.Center.Add(vecmath.VectorR3{X: x, Y: y, Z: z})
		}
	}
}

func (s SphereSampler) Inside(pos vecmath.VectorR3) bool {
	return pos.DistanceTo(s.Center) <= s.Radius
}

// RectangleSampler samples uniformly inside an axis-aligned box, per spec.md §4.3
// "Rectangle (AABB)".
type RectangleSampler struct {
	Center vecmath.VectorR3
	HalfX, HalfY, HalfZ float64
}

func (s RectangleSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	return s.Center.Add(vecmath.VectorR3{
		X: (2*r.Uniform01() - 1) * s.HalfX,
		Y: (2*r.Uniform01() - 1) * s.HalfY,
		Z: (2*r.Uniform01() - 1) * s.HalfZ,
	})
}

func (s RectangleSampler) Inside(pos vecmath.VectorR3) bool {
	d := pos.Sub(s.Center)
	return math.Abs(d.X) <= s.HalfX && math.Abs(d.Y) <= s.HalfY && math.Abs(d.Z) <= s.HalfZ
}

// CylinderSampler samples uniformly in (r^2, theta, z), per spec.md §4.3 "Cylinder":
// the radial draw is sqrt(u) so the areal density stays uniform.
type CylinderSampler struct {
	Center     vecmath.VectorR3
	Axis       vecmath.VectorR3 // unit
	Radius     float64
	HalfHeight float64
}

func (s CylinderSampler) basis() (u, v vecmath.VectorR3) {
	axis := s.Axis.Normalize()
	if math.Abs(axis.X) < 0.9 {
		u = vecmath.VectorR3{X: 1}.Cross(axis).Normalize()
	} else {
		u = vecmath.VectorR3{Y: 1}.Cross(axis).Normalize()
	}
	v = axis.Cross(u)
	return u, v
}

func (s CylinderSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	u, v := s.basis()
	radius := s.Radius * math.Sqrt(r.Uniform01())
	theta := 2 * math.Pi * r.Uniform01()
	z := (2*r.Uniform01() - 1) * s.HalfHeight
	offset := u.Scale(radius * math.Cos(theta)).Add(v.Scale(radius * math.Sin(theta))).Add(s.Axis.Normalize().Scale(z))
	return s.Center.Add(offset)
}

func (s CylinderSampler) Inside(pos vecmath.VectorR3) bool {
	axis := s.Axis.Normalize()
	d := pos.Sub(s.Center)
	z := d.Dot(axis)
	if math.Abs(z) > s.HalfHeight {
		return false
	}
	radial := d.Sub(axis.Scale(z))
	return radial.Norm() <= s.Radius
}

// EllipticCylinderSampler is CylinderSampler with independent radii on the two
// in-plane axes, per spec.md §4.3 "Elliptic cylinder": (r1*cos theta, r2*sin theta).
type EllipticCylinderSampler struct {
	Center     vecmath.VectorR3
	Axis       vecmath.VectorR3
	RadiusA    float64
	RadiusB    float64
	HalfHeight float64
}

func (s EllipticCylinderSampler) basis() (u, v vecmath.VectorR3) {
	return CylinderSampler{Axis: s.Axis}.basis()
}

func (s EllipticCylinderSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	u, v := s.basis()
	radius := math.Sqrt(r.Uniform01())
	theta := 2 * math.Pi * r.Uniform01()
	z := (2*r.Uniform01() - 1) * s.HalfHeight
	offset := u.Scale(radius * s.RadiusA * math.Cos(theta)).
		Add(v.Scale(radius * s.RadiusB * math.Sin(theta))).
		Add(s.Axis.Normalize().Scale(z))
	return s.Center.Add(offset)
}

func (s EllipticCylinderSampler) Inside(pos vecmath.VectorR3) bool {
	axis := s.Axis.Normalize()
	d := pos.Sub(s.Center)
	z := d.Dot(axis)
	if math.Abs(z) > s.HalfHeight {
		return false
	}
	u, v := s.basis()
	a, b := d.Dot(u), d.Dot(v)
	return (a*a)/(s.RadiusA*s.RadiusA)+(b*b)/(s.RadiusB*s.RadiusB) <= 1
}

// AnnulusCylinderSampler samples uniformly on the cylindrical boundary surface (not the
// interior), per spec.md §4.3 "Annulus cylinder".
type AnnulusCylinderSampler struct {
	Center     vecmath.VectorR3
	Axis       vecmath.VectorR3
	Radius     float64
	HalfHeight float64
}

func (s AnnulusCylinderSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	cyl := CylinderSampler{Center: s.Center, Axis: s.Axis, Radius: s.Radius, HalfHeight: s.HalfHeight}
	u, v := cyl.basis()
	theta := 2 * math.Pi * r.Uniform01()
	z := (2*r.Uniform01() - 1) * s.HalfHeight
	offset := u.Scale(s.Radius * math.Cos(theta)).Add(v.Scale(s.Radius * math.Sin(theta))).Add(s.Axis.Normalize().Scale(z))
	return s.Center.Add(offset)
}

func (s AnnulusCylinderSampler) Inside(pos vecmath.VectorR3) bool {
	return (CylinderSampler{Center: s.Center, Axis: s.Axis, Radius: s.Radius, HalfHeight: s.HalfHeight}).Inside(pos)
}

// AnnulusEllipticCylinderSampler samples the boundary of an elliptic cylinder with
// uniform arc length, per spec.md §4.3 "Annulus elliptic cylinder": a precomputed
// incomplete-elliptic-E table inverted by binary search picks phi.
type AnnulusEllipticCylinderSampler struct {
	Center           vecmath.VectorR3
	Axis             vecmath.VectorR3
	RadiusA, RadiusB float64
	HalfHeight       float64

	arcTable *arcLengthTable
}

// NewAnnulusEllipticCylinderSampler precomputes the arc-length CDF over phi in [0, 2pi).
func NewAnnulusEllipticCylinderSampler(center, axis vecmath.VectorR3, a, b, halfHeight float64) *AnnulusEllipticCylinderSampler {
	return &AnnulusEllipticCylinderSampler{
		Center: center, Axis: axis, RadiusA: a, RadiusB: b, HalfHeight: halfHeight,
		arcTable: buildArcLengthTable(a, b),
	}
}

func (s *AnnulusEllipticCylinderSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	cyl := EllipticCylinderSampler{Axis: s.Axis}
	u, v := cyl.basis()
	phi := s.arcTable.invert(r.Uniform01())
	z := (2*r.Uniform01() - 1) * s.HalfHeight
	offset := u.Scale(s.RadiusA * math.Cos(phi)).Add(v.Scale(s.RadiusB * math.Sin(phi))).Add(s.Axis.Normalize().Scale(z))
	return s.Center.Add(offset)
}

func (s *AnnulusEllipticCylinderSampler) Inside(pos vecmath.VectorR3) bool {
	return (EllipticCylinderSampler{Center: s.Center, Axis: s.Axis, RadiusA: s.RadiusA, RadiusB: s.RadiusB, HalfHeight: s.HalfHeight}).Inside(pos)
}

// arcLengthTable inverts the cumulative elliptic arc length, the "precomputed
// incomplete-elliptic-E table" spec.md names, via gonum's PiecewiseLinear fit: the CDF
// (strictly increasing by construction) is the predictor axis, phi the response.
type arcLengthTable struct {
	pred   interp.PiecewiseLinear
	lo, hi float64
}

func buildArcLengthTable(a, b float64) *arcLengthTable {
	const n = 721
	phis := make([]float64, 0, n)
	cdf := make([]float64, 0, n)
	var acc float64
	prevPhi, prevSpeed := 0.0, arcSpeed(a, b, 0)
	for i := 0; i < n; i++ {
		phi := 2 * math.Pi * float64(i) / float64(n-1)
		speed := arcSpeed(a, b, phi)
		if i > 0 {
			acc += 0.5 * (speed + prevSpeed) * (phi - prevPhi)
		}
		// PiecewiseLinear.Fit requires a strictly increasing x; arcSpeed is strictly
		// positive away from degenerate a==b==0, so acc is strictly increasing.
		if len(cdf) == 0 || acc > cdf[len(cdf)-1] {
			phis = append(phis, phi)
			cdf = append(cdf, acc)
		}
		prevPhi, prevSpeed = phi, speed
	}
	total := cdf[len(cdf)-1]
	if total > 0 {
		for i := range cdf {
			cdf[i] /= total
		}
	}
	var pred interp.PiecewiseLinear
	if err := pred.Fit(cdf, phis); err != nil {
		panic(err) // cdf is constructed strictly increasing above; a Fit error is a bug here.
	}
	return &arcLengthTable{pred: pred, lo: cdf[0], hi: cdf[len(cdf)-1]}
}

// arcSpeed is |d/dphi (a cos phi, b sin phi)|, the integrand of the elliptic arc
// length (equivalent to the incomplete elliptic integral of the second kind).
func arcSpeed(a, b, phi float64) float64 {
	dx := -a * math.Sin(phi)
	dy := b * math.Cos(phi)
	return math.Hypot(dx, dy)
}

func (t *arcLengthTable) invert(u float64) float64 {
	switch {
	case u <= t.lo:
		return t.pred.Predict(t.lo)
	case u >= t.hi:
		return t.pred.Predict(t.hi)
	default:
		return t.pred.Predict(u)
	}
}

// EllipsoidSampler samples uniformly in a unit ball then affine-maps by the
// ellipsoid's axes and radii, per spec.md §4.3 "Ellipsoid".
type EllipsoidSampler struct {
	Center                    vecmath.VectorR3
	AxisA, AxisB              vecmath.VectorR3 // unit, orthogonal; third axis is their cross product
	RadiusA, RadiusB, RadiusC float64
}

func (s EllipsoidSampler) axisC() vecmath.VectorR3 { return s.AxisA.Cross(s.AxisB) }

func (s EllipsoidSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	unit := (SphereSampler{Radius: 1}).SamplePoint(r)
	offset := s.AxisA.Scale(unit.X * s.RadiusA).
		Add(s.AxisB.Scale(unit.Y * s.RadiusB)).
		Add(s.axisC().Scale(unit.Z * s.RadiusC))
	return s.Center.Add(offset)
}

func (s EllipsoidSampler) Inside(pos vecmath.VectorR3) bool {
	d := pos.Sub(s.Center)
	a, b, c := d.Dot(s.AxisA), d.Dot(s.AxisB), d.Dot(s.axisC())
	return (a*a)/(s.RadiusA*s.RadiusA)+(b*b)/(s.RadiusB*s.RadiusB)+(c*c)/(s.RadiusC*s.RadiusC) <= 1
}

// VoxelSampler samples a 3-D image of non-negative weights: a cumulative weight table
// is built once and inverted by gonum's PiecewiseLinear fit, then each decay draws a
// voxel index and a uniform intra-voxel offset, per spec.md §4.3 "Voxel".
type VoxelSampler struct {
	Origin     vecmath.VectorR3
	NX, NY, NZ int
	VoxelSize  vecmath.VectorR3

	pred   interp.PiecewiseLinear
	lo, hi float64
}

// NewVoxelSampler precomputes the cumulative weight table over a flattened (x-fastest)
// weights slice of length nx*ny*nz. Zero-weight voxels are skipped so the predictor's x
// axis (cumulative weight) stays strictly increasing.
func NewVoxelSampler(origin vecmath.VectorR3, nx, ny, nz int, voxelSize vecmath.VectorR3, weights []float64) *VoxelSampler {
	cum := make([]float64, 0, len(weights))
	idxs := make([]float64, 0, len(weights))
	var acc float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		cum = append(cum, acc)
		idxs = append(idxs, float64(i))
	}
	var pred interp.PiecewiseLinear
	if err := pred.Fit(cum, idxs); err != nil {
		panic(err)
	}
	return &VoxelSampler{
		Origin: origin, NX: nx, NY: ny, NZ: nz, VoxelSize: voxelSize,
		pred: pred, lo: cum[0], hi: cum[len(cum)-1],
	}
}

func (s *VoxelSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	u := s.lo + r.Uniform01()*(s.hi-s.lo)
	idx := int(math.Round(s.pred.Predict(u)))
	if idx >= s.NX*s.NY*s.NZ {
		idx = s.NX*s.NY*s.NZ - 1
	}
	ix := idx % s.NX
	iy := (idx / s.NX) % s.NY
	iz := idx / (s.NX * s.NY)
	offset := vecmath.VectorR3{
		X: (float64(ix) + r.Uniform01()) * s.VoxelSize.X,
		Y: (float64(iy) + r.Uniform01()) * s.VoxelSize.Y,
		Z: (float64(iz) + r.Uniform01()) * s.VoxelSize.Z,
	}
	return s.Origin.Add(offset)
}

func (s *VoxelSampler) Inside(pos vecmath.VectorR3) bool {
	d := pos.Sub(s.Origin)
	return d.X >= 0 && d.Y >= 0 && d.Z >= 0 &&
		d.X < float64(s.NX)*s.VoxelSize.X && d.Y < float64(s.NY)*s.VoxelSize.Y && d.Z < float64(s.NZ)*s.VoxelSize.Z
}

// TessellationInside is the child-scene containment test a Vector (tessellation)
// source rejection-samples against, per spec.md §4.3 "Vector (tessellation)": a
// bounding box plus a child scene of triangles.
type TessellationInside func(pos vecmath.VectorR3) bool

// VectorSampler rejection-samples points in a bounding box until one lies inside the
// triangulated region.
type VectorSampler struct {
	Box     RectangleSampler
	Inside_ TessellationInside
}

func (s VectorSampler) SamplePoint(r *rng.Generator) vecmath.VectorR3 {
	for {
		p := s.Box.SamplePoint(r)
		if s.Inside_(p) {
			return p
		}
	}
}

func (s VectorSampler) Inside(pos vecmath.VectorR3) bool { return s.Inside_(pos) }

// BeamSampler emits from a fixed point with directions uniform within a half-angle
// cone around Axis, per spec.md §4.3 "Beam". Position is degenerate (always Origin).
type BeamSampler struct {
	Origin       vecmath.VectorR3
	Axis         vecmath.VectorR3
	HalfAngleRad float64
}

func (s BeamSampler) SamplePoint(*rng.Generator) vecmath.VectorR3 { return s.Origin }
func (s BeamSampler) Inside(pos vecmath.VectorR3) bool            { return pos == s.Origin }

// SampleDirection draws uniformly within the cone, per spec.md §4.3.
func (s BeamSampler) SampleDirection(r *rng.Generator) vecmath.VectorR3 {
	cosMax := math.Cos(s.HalfAngleRad)
	cosTheta := 1 - r.Uniform01()*(1-cosMax)
	return r.DeflectionCone(s.Axis.Normalize(), cosTheta)
}

// GaussBeamSampler emits from a fixed point with a Gaussian angular spread around
// Axis, per spec.md §4.3 "Gauss-beam".
type GaussBeamSampler struct {
	Origin   vecmath.VectorR3
	Axis     vecmath.VectorR3
	SigmaRad float64
}

func (s GaussBeamSampler) SamplePoint(*rng.Generator) vecmath.VectorR3 { return s.Origin }
func (s GaussBeamSampler) Inside(pos vecmath.VectorR3) bool            { return pos == s.Origin }

func (s GaussBeamSampler) SampleDirection(r *rng.Generator) vecmath.VectorR3 {
	return r.Acolinearity(s.Axis.Normalize(), s.SigmaRad*sigmaToFWHMRatio)
}
