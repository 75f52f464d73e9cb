package rng

import (
	"math"

	"github.com/grayscene/gray/internal/vecmath"
)

// UnitSphereDirection samples a uniformly distributed direction on the unit sphere.
// Consumes 2 Uniform01 draws, grounded on Random::UniformSphere's
// Transform::UniformSphere(u1, u2) convention.
func (g *Generator) UnitSphereDirection() vecmath.VectorR3 {
	u1 := g.Uniform01()
	u2 := g.Uniform01()
	cosTheta := 1 - 2*u1
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * u2
	return vecmath.VectorR3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: cosTheta,
	}
}

// DeflectionCone samples a direction deflected from ref by an angle whose cosine is
// cosTheta, with phi uniform in [0, 2pi). Consumes 1 Uniform01 draw (phi only; the
// polar angle is given, matching Random::Deflection's signature).
func (g *Generator) DeflectionCone(ref vecmath.VectorR3, cosTheta float64) vecmath.VectorR3 {
	phi := 2 * math.Pi * g.Uniform01()
	return rotateAboutAxis(ref.Normalize(), cosTheta, phi)
}

// rotateAboutAxis builds an orthonormal basis around ref and returns the unit vector at
// polar angle acos(cosTheta) from ref and azimuth phi around it.
func rotateAboutAxis(ref vecmath.VectorR3, cosTheta, phi float64) vecmath.VectorR3 {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	// Build an arbitrary perpendicular basis (u, v, ref).
	var u vecmath.VectorR3
	if math.Abs(ref.X) < 0.9 {
		u = vecmath.VectorR3{X: 1}.Cross(ref).Normalize()
	} else {
		u = vecmath.VectorR3{Y: 1}.Cross(ref).Normalize()
	}
	v := ref.Cross(u)
	return u.Scale(sinTheta * math.Cos(phi)).
		Add(v.Scale(sinTheta * math.Sin(phi))).
		Add(ref.Scale(cosTheta))
}

// Acolinearity perturbs the 511 keV back-to-back photon pair direction by the
// (Gaussian-distributed) non-collinearity angle. fwhm is in radians.
// Consumes 1 Normal draw plus 1 Uniform01 draw (azimuth).
func (g *Generator) Acolinearity(ref vecmath.VectorR3, fwhmRadians float64) vecmath.VectorR3 {
	sigma := fwhmRadians / sigmaToFWHM
	theta := g.Normal(0, sigma)
	return g.DeflectionCone(ref, math.Cos(theta))
}

// sigmaToFWHM converts a Gaussian sigma to full-width-half-maximum.
const sigmaToFWHM = 2.3548200450309493 // 2*sqrt(2*ln(2))

// TruncatedGaussian draws N(mean, sigma) rejecting samples outside [lo, hi]. Consumes
// one Normal draw per attempt; bounded mean attempts for realistic (lo, hi, sigma).
func (g *Generator) TruncatedGaussian(mean, sigma, lo, hi float64) float64 {
	for {
		x := g.Normal(mean, sigma)
		if x >= lo && x <= hi {
			return x
		}
	}
}

// TruncatedDoubleExponential samples Levin's positron-range double-exponential model:
// with probability frac draws Exponential(lambda1), otherwise Exponential(lambda2),
// rejecting until the result falls in [lo, hi]. Consumes 1-2 Uniform01/Exponential
// draws per attempt.
func (g *Generator) TruncatedDoubleExponential(frac, lambda1, lambda2, lo, hi float64) float64 {
	for {
		var x float64
		if g.Uniform01() < frac {
			x = g.Exponential(lambda1)
		} else {
			x = g.Exponential(lambda2)
		}
		if x >= lo && x <= hi {
			return x
		}
	}
}
