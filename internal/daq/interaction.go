// Package daq is the data-acquisition pipeline: the Interaction event model, the
// contiguous event buffer, and DaqModel, which owns the ordered chain of singles
// Processes plus zero-or-more parallel coincidence Processes, per spec.md §3/§4.4.
package daq

import (
	"github.com/google/uuid"
	"github.com/grayscene/gray/internal/vecmath"
)

// InteractionType is the tagged-union kind of an Interaction record, per spec.md §3.
type InteractionType int

const (
	NuclearDecay InteractionType = iota
	Photoelectric
	Compton
	Rayleigh
	XRayEscape
	NoInteraction
	ErrorTraceDepth
	ErrorEmptyStack
	ErrorMatch
)

func (t InteractionType) String() string {
	switch t {
	case NuclearDecay:
		return "NuclearDecay"
	case Photoelectric:
		return "Photoelectric"
	case Compton:
		return "Compton"
	case Rayleigh:
		return "Rayleigh"
	case XRayEscape:
		return "XRayEscape"
	case NoInteraction:
		return "NoInteraction"
	case ErrorTraceDepth:
		return "ErrorTraceDepth"
	case ErrorEmptyStack:
		return "ErrorEmptyStack"
	case ErrorMatch:
		return "ErrorMatch"
	default:
		return "Unknown"
	}
}

// Color distinguishes the two annihilation-pair photons from a prompt gamma, per
// spec.md's GLOSSARY.
type Color int

const (
	Blue Color = iota
	Red
	Yellow
)

// Interaction is the sole currency of the DAQ pipeline, per spec.md §3. Fields mirror
// the spec exactly; CoincID follows the signed convention: -1 untouched, -2 rejected,
// >=0 accepted coincidence group id.
type Interaction struct {
	DecayID uuid.UUID
	Type    InteractionType
	Color   Color
	Time    float64 // seconds
	Pos     vecmath.VectorR3
	Energy  float64 // MeV, deposited at this point
	DetID   int     // negative outside any sensitive detector
	SrcID   int
	MatID   int

	ScatterComptonPhantom   bool
	ScatterComptonDetector  bool
	ScatterRayleighPhantom  bool
	ScatterRayleighDetector bool
	XRayFluorescence        bool

	Dropped bool
	CoincID int
}

// NewInteraction returns a zero-valued Interaction with the invariant defaults
// spec.md §3 names: Dropped=false, CoincID=-1.
func NewInteraction() Interaction {
	return Interaction{CoincID: -1}
}
