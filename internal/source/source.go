package source

import (
	"math"

	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/transport"
	"github.com/grayscene/gray/internal/vecmath"
)

// Source is the tiny construction-time interface spec.md §9 calls for: polymorphism
// only at construction, a closed dispatch surface at run time.
type Source interface {
	GetActivity(time float64) float64
	GetExpectedDecays(start, dt float64) float64
	GetExpectedPhotons(start, dt float64) float64
	Decay(photonID int, time float64, r *rng.Generator) *transport.NuclearDecay
	Inside(pos vecmath.VectorR3) bool
	GetPosition() vecmath.VectorR3
}

// BaseSource holds the activity bookkeeping shared by every concrete source, per
// spec.md §4.3 "Activity decays with the isotope half-life; infinite half-life yields
// constant activity. Negative activity sources exist".
type BaseSource struct {
	Activity0 float64 // A0 at t=0; negative for a subtractive (veto) source
	Isotope   Isotope
}

// GetActivity is A0*exp(-lambda*t), per spec.md §8 property 7.
func (b BaseSource) GetActivity(time float64) float64 {
	lambda := b.Isotope.DecayLambda()
	if lambda == 0 {
		return b.Activity0
	}
	return b.Activity0 * math.Exp(-lambda*time)
}

// GetExpectedDecays integrates activity over [start, start+dt], per spec.md §8
// property 7: A0/lambda * (exp(-lambda*t0) - exp(-lambda*(t0+dt))), or A0*dt for an
// infinite half-life.
func (b BaseSource) GetExpectedDecays(start, dt float64) float64 {
	lambda := b.Isotope.DecayLambda()
	if lambda == 0 {
		return b.Activity0 * dt
	}
	return b.Activity0 / lambda * (math.Exp(-lambda*start) - math.Exp(-lambda*(start+dt)))
}

// GetExpectedPhotons scales expected decays by the isotope's photon multiplicity.
func (b BaseSource) GetExpectedPhotons(start, dt float64) float64 {
	return b.GetExpectedDecays(start, dt) * float64(b.Isotope.PhotonsPerDecay())
}

// GeomSource is a Source backed by one of the twelve geometric samplers of
// spec.md §4.3. Negative-activity sources are built the same way; SourceList applies
// the rejection veto (spec.md §4.3 "any decay whose point lies inside a negative
// source is vetoed by rejection").
type GeomSource struct {
	BaseSource
	Sampler Sampler
	Center  vecmath.VectorR3 // the sampler's fixed geometric center/origin, not a draw
	Axis    vecmath.VectorR3 // consulted only by Beam/GaussBeam isotopes
	SrcID   int
}

func (g *GeomSource) Decay(photonID int, time float64, r *rng.Generator) *transport.NuclearDecay {
	centroid := g.Sampler.SamplePoint(r)
	return BuildDecay(g.Isotope, g.SrcID, time, centroid, g.Axis, r)
}

func (g *GeomSource) Inside(pos vecmath.VectorR3) bool { return g.Sampler.Inside(pos) }

// GetPosition is the stack-build centroid spec.md §4.3 names: the source's fixed
// geometric center, used by the worker to seed the source-material stack probe before
// any decay is drawn.
func (g *GeomSource) GetPosition() vecmath.VectorR3 { return g.Center }
