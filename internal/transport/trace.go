package transport

import (
	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/material"
	"github.com/grayscene/gray/internal/rng"
	"github.com/grayscene/gray/internal/scene"
)

const (
	maxTraceDepth       = 500
	transportEpsilon    = 1e-10
	speedOfLightCmPerS  = 29979245800.0 // cm/s; Gray's native time unit is the second
	electronRestMassMeV = 0.511
)

// GammaRayTrace runs the photon Monte Carlo loop of spec.md §4.2 over every photon of
// decay, returning the Interaction records the logging policy permits, and updating
// stats regardless. stack is the source-centroid material stack already built (and, for
// positron decays, range-corrected) by the caller; each photon clones it independently.
func GammaRayTrace(sc *scene.Scene, decay *NuclearDecay, stack *MaterialStack, r *rng.Generator, policy LoggingPolicy, stats *GammaRayTraceStats) []daq.Interaction {
	var events []daq.Interaction
	if policy.LogDecays {
		ev := daq.NewInteraction()
		ev.DecayID = decay.ID
		ev.Type = daq.NuclearDecay
		ev.Time = decay.Time
		ev.Pos = decay.EmissionPos
		ev.SrcID = decay.SrcID
		events = append(events, ev)
	}
	for i := range decay.Photons {
		ph := decay.Photons[i]
		stats.NoPhotonsTraced++
		events = append(events, tracePhoton(sc, ph, stack.Clone(), r, policy, stats)...)
	}
	return events
}

func tracePhoton(sc *scene.Scene, ph Photon, stack *MaterialStack, r *rng.Generator, policy LoggingPolicy, stats *GammaRayTraceStats) []daq.Interaction {
	var events []daq.Interaction

	for depth := 0; depth < maxTraceDepth; depth++ {
		if stack.Empty() {
			stats.NoEmptyStackErrors++
			if policy.LogErrors {
				events = append(events, errorInteraction(daq.ErrorEmptyStack, ph, -1))
			}
			return events
		}
		topMat, topDet, _ := stack.Top()

		hitDist, vp, hit := sc.SeekIntersection(ph.Pos, ph.Dir)
		if !hit {
			return events
		}

		d := topMat.InteractionDistance(ph.Energy, r)
		if d < hitDist {
			ph.Pos = ph.Pos.Add(ph.Dir.Scale(d))
			ph.Time += d / speedOfLightCmPerS

			switch topMat.ChooseInteraction(ph.Energy, r) {
			case material.Photoelectric:
				stats.NoPhotoelectric++
				escaped, xrayEnergy := topMat.KShellEscape(r)
				if escaped {
					stats.NoXRayEscape++
					if shouldLog(daq.XRayEscape, topDet, policy) {
						events = append(events, depositInteraction(daq.XRayEscape, ph, topDet, ph.Energy-xrayEnergy))
					}
					ph.Energy = xrayEnergy
					ph.Dir = r.UnitSphereDirection()
					ph.XRayFluorescence = true
					continue
				}
				if shouldLog(daq.Photoelectric, topDet, policy) {
					events = append(events, depositInteraction(daq.Photoelectric, ph, topDet, ph.Energy))
				}
				return events

			case material.Compton:
				stats.NoCompton++
				cosTheta := topMat.SampleComptonAngle(ph.Energy, r)
				newEnergy, deposit := comptonScatter(ph.Energy, cosTheta)
				ph.Dir = r.DeflectionCone(ph.Dir, cosTheta)
				ph.Energy = newEnergy
				if topDet < 0 {
					ph.ScatterComptonPhantom = true
				} else {
					ph.ScatterComptonDetector = true
				}
				if shouldLog(daq.Compton, topDet, policy) {
					events = append(events, depositInteraction(daq.Compton, ph, topDet, deposit))
				}
				continue

			default: // material.Rayleigh
				stats.NoRayleigh++
				cosTheta := topMat.SampleRayleighAngle(ph.Energy, r)
				ph.Dir = r.DeflectionCone(ph.Dir, cosTheta)
				if topDet < 0 {
					ph.ScatterRayleighPhantom = true
				} else {
					ph.ScatterRayleighDetector = true
				}
				if policy.LogNonDepositing && shouldLog(daq.Rayleigh, topDet, policy) {
					events = append(events, depositInteraction(daq.Rayleigh, ph, topDet, 0))
				}
				continue
			}
		}

		ph.Pos = ph.Pos.Add(ph.Dir.Scale(hitDist))
		ph.Time += hitDist / speedOfLightCmPerS

		if vp.Front {
			stack.Push(vp.Object.Material(), vp.Object.DetID())
		} else {
			popped, _, ok := stack.Pop()
			if !ok || popped != vp.Object.Material() {
				stats.NoMatchErrors++
				if policy.LogErrors {
					events = append(events, errorInteraction(daq.ErrorMatch, ph, topDet))
				}
				return events
			}
		}
		ph.Pos = ph.Pos.Add(ph.Dir.Scale(transportEpsilon))
	}

	stats.NoTraceDepthErrors++
	if policy.LogErrors {
		events = append(events, errorInteraction(daq.ErrorTraceDepth, ph, -1))
	}
	return events
}

// comptonScatter applies the Compton kinematics of spec.md §8 property 6: a photon of
// energy e0 scattering by angle theta (cosTheta = cos theta) emerges with
// e0/(1+alpha*(1-cosTheta)), alpha=e0/511 keV; the difference is deposited locally.
func comptonScatter(e0, cosTheta float64) (newEnergy, deposit float64) {
	alpha := e0 / electronRestMassMeV
	newEnergy = e0 / (1 + alpha*(1-cosTheta))
	return newEnergy, e0 - newEnergy
}

// shouldLog applies the non-sensitive-volume policy: interactions outside any
// det_id-bearing viewable are dropped unless LogNonSensitive is set.
func shouldLog(kind daq.InteractionType, detID int, policy LoggingPolicy) bool {
	if detID < 0 && !policy.LogNonSensitive {
		return false
	}
	_ = kind
	return true
}

func depositInteraction(kind daq.InteractionType, ph Photon, detID int, deposit float64) daq.Interaction {
	ev := daq.NewInteraction()
	ev.DecayID = ph.DecayID
	ev.Type = kind
	ev.Color = ph.Color
	ev.Time = ph.Time
	ev.Pos = ph.Pos
	ev.Energy = deposit
	ev.DetID = detID
	ev.SrcID = ph.SrcID
	ev.ScatterComptonPhantom = ph.ScatterComptonPhantom
	ev.ScatterComptonDetector = ph.ScatterComptonDetector
	ev.ScatterRayleighPhantom = ph.ScatterRayleighPhantom
	ev.ScatterRayleighDetector = ph.ScatterRayleighDetector
	ev.XRayFluorescence = ph.XRayFluorescence
	return ev
}

func errorInteraction(kind daq.InteractionType, ph Photon, detID int) daq.Interaction {
	ev := daq.NewInteraction()
	ev.DecayID = ph.DecayID
	ev.Type = kind
	ev.Time = ph.Time
	ev.Pos = ph.Pos
	ev.DetID = detID
	ev.SrcID = ph.SrcID
	return ev
}
