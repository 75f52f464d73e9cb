package transport

import (
	"github.com/google/uuid"
	"github.com/grayscene/gray/internal/vecmath"
)

// DecayKind is the tagged-union discriminant of NuclearDecay, per spec.md §4.3's four
// emission models: positron annihilation, gauss-beam, beam, and prompt-gamma emitters.
type DecayKind int

const (
	PositronDecay DecayKind = iota
	GaussBeamDecay
	BeamDecay
	PromptGammaDecay
)

// NuclearDecay is one simulated radioactive decay event and the photon(s) it emits.
// Centroid is the source's nominal emission point; EmissionPos is the (possibly
// positron-range-displaced) actual point transport starts from, per spec.md §4.2
// "Source-material stack".
type NuclearDecay struct {
	ID    uuid.UUID
	Kind  DecayKind
	SrcID int
	Time  float64

	Centroid    vecmath.VectorR3
	EmissionPos vecmath.VectorR3

	Photons []Photon
}
