package source

import (
	"math"

	"github.com/google/uuid"
	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/transport"
	"github.com/grayscene/gray/internal/vecmath"
)

// BuildDecay constructs the NuclearDecay and its photons for one decay event, per
// spec.md §3 "NuclearDecay" / §4.2. centroid is the source's nominal emission point;
// axis is consulted only for Beam/GaussBeam isotopes.
func BuildDecay(iso Isotope, srcID int, t float64, centroid vecmath.VectorR3, axis vecmath.VectorR3, r *rng.Generator) *transport.NuclearDecay {
	id := uuid.New()
	decay := &transport.NuclearDecay{
		ID:          id,
		SrcID:       srcID,
		Time:        t,
		Centroid:    centroid,
		EmissionPos: centroid,
	}

	switch iso.Kind {
	case Positron:
		decay.Kind = transport.PositronDecay
		decay.EmissionPos = applyPositronRange(iso, centroid, r)
		blueDir := r.UnitSphereDirection()
		redDir := r.Acolinearity(blueDir.Inv(), iso.AcolinearityFWHM)
		decay.Photons = append(decay.Photons,
			newPhoton(id, srcID, t, decay.EmissionPos, blueDir, 0.511, daq.Blue),
			newPhoton(id, srcID, t, decay.EmissionPos, redDir, 0.511, daq.Red),
		)
		if iso.PromptGammaProbability > 0 && r.Uniform01() < iso.PromptGammaProbability {
			decay.Kind = transport.PromptGammaDecay
			dir := r.UnitSphereDirection()
			decay.Photons = append(decay.Photons,
				newPhoton(id, srcID, t, decay.EmissionPos, dir, iso.PromptGammaEnergy, daq.Yellow))
		}

	case SingleGamma:
		decay.Kind = transport.PromptGammaDecay
		dir := r.UnitSphereDirection()
		decay.Photons = append(decay.Photons,
			newPhoton(id, srcID, t, centroid, dir, iso.SingleGammaEnergy, daq.Yellow))

	case Beam:
		decay.Kind = transport.BeamDecay
		cosTheta := 1 - r.Uniform01()*(1-math.Cos(iso.BeamHalfAngleRad))
		dir := r.DeflectionCone(axis, cosTheta)
		decay.Photons = append(decay.Photons,
			newPhoton(id, srcID, t, centroid, dir, iso.BeamEnergy, daq.Yellow))

	case GaussBeam:
		decay.Kind = transport.GaussBeamDecay
		dir := r.Acolinearity(axis, iso.GaussBeamSigmaRad*sigmaToFWHMRatio)
		decay.Photons = append(decay.Photons,
			newPhoton(id, srcID, t, centroid, dir, iso.BeamEnergy, daq.Yellow))
	}

	return decay
}

const sigmaToFWHMRatio = 2.3548200450309493 // 2*sqrt(2*ln2); Acolinearity takes a FWHM

func newPhoton(decayID uuid.UUID, srcID int, t float64, pos, dir vecmath.VectorR3, energy float64, color daq.Color) transport.Photon {
	return transport.Photon{
		DecayID: decayID,
		SrcID:   srcID,
		Pos:     pos,
		Dir:     dir,
		Energy:  energy,
		Time:    t,
		Color:   color,
	}
}

// applyPositronRange displaces the emission point from the source centroid by a
// randomly oriented, randomly sampled positron range, per spec.md §4.2
// "A positron decay whose actual emission point is displaced by positron range
// additionally re-ray-casts between centroid and emission point to correct the stack."
func applyPositronRange(iso Isotope, centroid vecmath.VectorR3, r *rng.Generator) vecmath.VectorR3 {
	var dist float64
	switch iso.RangeKind {
	case LevinDoubleExponential:
		dist = r.TruncatedDoubleExponential(iso.RangeFrac, iso.RangeLambda1, iso.RangeLambda2, 0, iso.RangeMax)
	case TruncatedGaussianRange:
		dist = r.TruncatedGaussian(0, iso.RangeSigma, 0, iso.RangeMax)
	default:
		return centroid
	}
	dir := r.UnitSphereDirection()
	return centroid.Add(dir.Scale(dist))
}
