package transport

import "github.com/grayscene/gray/internal/material"

// MaterialStack holds weak, non-owning handles to Scene materials, per spec.md §9
// "Ownership graphs". Front-face crossings push; matching back-face crossings pop.
type MaterialStack struct {
	mats []*material.GammaStats
	dets []int
}

// NewMaterialStack seeds a stack from the ordered materials a source-centroid probe
// ray found enclosing it, per spec.md §4.2 "Source-material stack". The seeded frames
// carry no detector id (-1): they were crossed by the probe, not the photon itself.
func NewMaterialStack(mats []*material.GammaStats) *MaterialStack {
	s := &MaterialStack{}
	for _, m := range mats {
		s.mats = append(s.mats, m)
		s.dets = append(s.dets, -1)
	}
	return s
}

// Clone deep-copies the stack so independent photons from the same decay can diverge.
func (s *MaterialStack) Clone() *MaterialStack {
	c := &MaterialStack{
		mats: make([]*material.GammaStats, len(s.mats)),
		dets: make([]int, len(s.dets)),
	}
	copy(c.mats, s.mats)
	copy(c.dets, s.dets)
	return c
}

func (s *MaterialStack) Empty() bool { return len(s.mats) == 0 }

func (s *MaterialStack) Top() (*material.GammaStats, int, bool) {
	if s.Empty() {
		return nil, -1, false
	}
	n := len(s.mats)
	return s.mats[n-1], s.dets[n-1], true
}

func (s *MaterialStack) Push(m *material.GammaStats, detID int) {
	s.mats = append(s.mats, m)
	s.dets = append(s.dets, detID)
}

// Pop removes the top frame. The caller is responsible for verifying the popped
// material matches the face being crossed (spec.md §4.2 step 6, ErrorMatch).
func (s *MaterialStack) Pop() (*material.GammaStats, int, bool) {
	if s.Empty() {
		return nil, -1, false
	}
	n := len(s.mats)
	m, d := s.mats[n-1], s.dets[n-1]
	s.mats = s.mats[:n-1]
	s.dets = s.dets[:n-1]
	return m, d, true
}
