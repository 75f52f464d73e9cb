// Package transport implements the photon Monte Carlo transport loop of spec.md §4.2:
// the material stack, the tagged-union NuclearDecay/Photon data model, and
// GammaRayTrace, which walks a decay's photons through a scene emitting Interactions.
package transport

import (
	"github.com/google/uuid"
	"github.com/grayscene/gray/internal/daq"
	"github.com/grayscene/gray/internal/vecmath"
)

// Photon holds no owning references, only primitive fields, per spec.md §9
// "Ownership graphs".
type Photon struct {
	ID      int
	DecayID uuid.UUID
	SrcID   int

	Pos vecmath.VectorR3
	Dir vecmath.VectorR3

	Energy float64 // MeV
	Time   float64 // seconds

	Color daq.Color

	// Accumulated scatter history, stamped into every Interaction this photon emits
	// from here on, per spec.md §3 "per-photon scatter flags that the ray tracer
	// accumulates". Phantom = occurred outside any sensitive detector; Detector =
	// occurred inside one.
	ScatterComptonPhantom   bool
	ScatterComptonDetector  bool
	ScatterRayleighPhantom  bool
	ScatterRayleighDetector bool
	XRayFluorescence        bool
}
