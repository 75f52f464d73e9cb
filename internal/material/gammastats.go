package material

import (
	"math"

	"github.com/grayscene/gray/internal/rng"
)

// InteractionKind is the categorical outcome of a transport-step interaction draw.
type InteractionKind int

const (
	Photoelectric InteractionKind = iota
	Compton
	Rayleigh
)

// GammaStats holds one material's attenuation-length tables (mass attenuation x
// density, already resolved to 1/cm units by the loader) and its precomputed angular
// scattering CDFs.
type GammaStats struct {
	Name string

	PhotoelectricAtten Table // energy (MeV) -> attenuation length^-1 (1/cm)
	ComptonAtten       Table
	RayleighAtten      Table

	EnableInteractions bool

	// K-shell fluorescence, optional.
	HasKShell          bool
	KEdgeEnergy        float64 // MeV
	KEdgeProbability   float64 // probability an absorption yields an escape x-ray
	KFluorescenceYield float64
	KXRayEnergy        float64

	comptonCDF  *angularCDF
	rayleighCDF *angularCDF
}

// NewGammaStats builds the per-material record, precomputing the Compton and Rayleigh
// angular CDFs from the supplied form-factor (Rayleigh) and incoherent scattering
// function (Compton) tables, per spec.md §3/§9 ("Precomputed CDF tables").
func NewGammaStats(name string, photo, compton, rayleigh Table, incoherentS, formFactorF Table) *GammaStats {
	g := &GammaStats{
		Name:               name,
		PhotoelectricAtten: photo,
		ComptonAtten:       compton,
		RayleighAtten:      rayleigh,
		EnableInteractions: true,
	}
	g.comptonCDF = buildComptonCDF(incoherentS)
	g.rayleighCDF = buildRayleighCDF(formFactorF)
	return g
}

// TotalAttenuation returns the sum of the three per-process attenuation lengths at the
// given photon energy (MeV), the rate parameter for the interaction-distance draw.
func (g *GammaStats) TotalAttenuation(energy float64) float64 {
	return g.PhotoelectricAtten.Interpolate(energy) +
		g.ComptonAtten.Interpolate(energy) +
		g.RayleighAtten.Interpolate(energy)
}

// InteractionDistance samples the distance to the next interaction from an exponential
// whose rate is TotalAttenuation(energy), per spec.md §4.2 step 4. If interactions are
// disabled for this material, it returns +Inf so the photon always transmits.
func (g *GammaStats) InteractionDistance(energy float64, r *rng.Generator) float64 {
	if !g.EnableInteractions {
		return math.Inf(1)
	}
	rate := g.TotalAttenuation(energy)
	if rate <= 0 {
		return math.Inf(1)
	}
	return r.Exponential(rate)
}

// ChooseInteraction samples which of the three processes occurred, weighted by their
// attenuation components at the given energy, per spec.md §4.2 step 5.
func (g *GammaStats) ChooseInteraction(energy float64, r *rng.Generator) InteractionKind {
	pe := g.PhotoelectricAtten.Interpolate(energy)
	co := g.ComptonAtten.Interpolate(energy)
	ra := g.RayleighAtten.Interpolate(energy)
	total := pe + co + ra
	if total <= 0 {
		return Photoelectric
	}
	u := r.Uniform01() * total
	if u < pe {
		return Photoelectric
	}
	if u < pe+co {
		return Compton
	}
	return Rayleigh
}

// SampleComptonAngle inverse-samples the Klein-Nishina x incoherent-scattering-function
// CDF at the given energy, returning cos(theta).
func (g *GammaStats) SampleComptonAngle(energy float64, r *rng.Generator) float64 {
	return g.comptonCDF.sample(energy, r.Uniform01())
}

// SampleRayleighAngle inverse-samples the Thomson x form-factor^2 CDF at the given
// energy, returning cos(theta). Documented as a current-behavior approximation per
// spec.md §9 Open Question (ii): Rayleigh is modeled as Thomson x F(x,E)^2, which
// older code comments in the original implementation flag as approximate — this
// implementation follows the current (not the flagged-legacy) behavior.
func (g *GammaStats) SampleRayleighAngle(energy float64, r *rng.Generator) float64 {
	return g.rayleighCDF.sample(energy, r.Uniform01())
}

// KShellEscape decides, for a photoelectric absorption, whether a K-shell fluorescence
// x-ray escapes instead of full absorption. Returns (escaped, xrayEnergy).
func (g *GammaStats) KShellEscape(r *rng.Generator) (bool, float64) {
	if !g.HasKShell {
		return false, 0
	}
	if r.Uniform01() < g.KEdgeProbability*g.KFluorescenceYield {
		return true, g.KXRayEnergy
	}
	return false, 0
}
